package models

type EvaluateAnswerRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	User     string `json:"user" validate:"required"`
}

type QuizRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer []string `json:"correct_answer"`
}

type TopicQuestionsRequest struct {
	Topic      string `json:"topic" validate:"required"`
	Difficulty string `json:"difficulty"`
}

type SubmitAnswerRequest struct {
	User   string `json:"user"`
	Answer string `json:"answer"`
}

type TopicEvaluateRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type ToggleAdminRequest struct {
	Email   string `json:"email" validate:"required,email"`
	IsAdmin bool   `json:"isAdmin"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  bool   `json:"isAdmin"`
}

type DeleteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AdminUser struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
