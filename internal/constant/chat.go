package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	ChatSessionDefaultTitle = "New conversation"
	ChatSessionGreeting     = "Hi! I'm your shopping assistant. Tell me what you're looking for, or send a photo."
)
