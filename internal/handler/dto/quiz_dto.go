package dto

// AnswerCreateDTO представляет вариант ответа при создании викторины
type AnswerCreateDTO struct {
	Text      string `json:"text" binding:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateDTO представляет вопрос при создании викторины
type QuestionCreateDTO struct {
	Text    string            `json:"text" binding:"required,max=500"`
	Answers []AnswerCreateDTO `json:"answers" binding:"required"`
}

// QuizCreateRequest представляет запрос на создание викторины.
// Минимумы (два вопроса, по два варианта ответа) проверяются сервисом.
type QuizCreateRequest struct {
	CompanyID       uint                `json:"company_id" binding:"required"`
	Name            string              `json:"name" binding:"required,max=100"`
	Description     string              `json:"description" binding:"max=500"`
	FrequencyInDays int                 `json:"frequency_in_days" binding:"required,min=1"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required"`
}

// QuizUpdateRequest представляет запрос на обновление викторины.
// Правки периодичности применяются только проспективно.
type QuizUpdateRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description     *string `json:"description,omitempty" binding:"omitempty,max=500"`
	FrequencyInDays *int    `json:"frequency_in_days,omitempty" binding:"omitempty,min=1"`
}

// QuestionUpdateRequest представляет запрос на обновление вопроса
type QuestionUpdateRequest struct {
	Text     *string `json:"text,omitempty" binding:"omitempty,max=500"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// AnswerUpdateRequest представляет запрос на обновление варианта ответа
type AnswerUpdateRequest struct {
	Text      *string `json:"text,omitempty" binding:"omitempty,max=500"`
	IsCorrect *bool   `json:"is_correct,omitempty"`
}

// SubmitAnswerRequest представляет отправку ответа на вопрос викторины
type SubmitAnswerRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	AnswerID   uint `json:"answer_id" binding:"required"`
}
