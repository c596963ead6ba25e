package constant

const (
	ChatSenderUser = "user"
	ChatSenderAi   = "ai"

	DefaultSessionTitle = "New Chat"
	DefaultUserId       = "anonymous"
)

// Sampling and output bounds per operation.
const (
	ChatMaxTokens   = 1000
	ChatTemperature = 0.7

	SummaryMaxTokens   = 500
	SummaryTemperature = 0.5

	FlashcardMaxTokens   = 800
	FlashcardTemperature = 0.6

	// ContextExcerptLimit bounds how much extracted document text is handed
	// to the model as conversation context.
	ContextExcerptLimit = 2000
)

const StudyCompanionSystemPrompt = `You are an AI study companion designed to help students learn effectively.
You should provide clear, educational responses that help students understand concepts.

Guidelines:
- Be encouraging and supportive
- Break down complex concepts into understandable parts
- Provide examples when helpful
- Ask clarifying questions if needed
- Focus on learning and understanding`

// ContextPreamble prefixes document context injected into the system prompt.
const ContextPreamble = "Context from uploaded materials: "

const SummarySystemPrompt = "You are an AI that creates concise, educational summaries. " +
	"Focus on key concepts, main points, and important details that would help a student understand the material."

const SummaryUserPromptFormat = "Please provide a comprehensive summary of the following text:\n\n%s"

const FlashcardSystemPrompt = "You are an AI that creates educational flashcards. " +
	"Generate 5-10 flashcards in JSON format with 'question' and 'answer' fields. " +
	"Focus on key concepts, definitions, and important facts."

const FlashcardUserPromptFormat = "Create flashcards for the following text:\n\n%s"
