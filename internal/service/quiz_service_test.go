package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// ============================================================================
// Тесты QuizService
// ============================================================================

func setupQuizServiceMocks() (*MockQuizRepository, *MockQuestionRepository, *MockAnswerRepository, *MockCompanyRepository, *MockCompanyRoleRepository, *QuizService) {
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	answerRepo := new(MockAnswerRepository)
	companyRepo := new(MockCompanyRepository)
	roleRepo := new(MockCompanyRoleRepository)
	svc := NewQuizService(quizRepo, questionRepo, answerRepo, companyRepo, roleRepo)
	return quizRepo, questionRepo, answerRepo, companyRepo, roleRepo, svc
}

func activeCompany(id, ownerID uint) *entity.Company {
	return &entity.Company{ID: id, OwnerID: ownerID, Name: "Компания", IsActive: true}
}

func adminRole(userID, companyID uint) *entity.CompanyRole {
	return &entity.CompanyRole{UserID: userID, CompanyID: companyID, RoleType: entity.RoleTypeAdmin, IsActive: true}
}

func validQuizRequest(companyID uint) dto.QuizCreateRequest {
	return dto.QuizCreateRequest{
		CompanyID:       companyID,
		Name:            "Охрана труда",
		Description:     "Ежеквартальная проверка знаний",
		FrequencyInDays: 2,
		Questions: []dto.QuestionCreateDTO{
			{
				Text: "Вопрос 1",
				Answers: []dto.AnswerCreateDTO{
					{Text: "Верный", IsCorrect: true},
					{Text: "Неверный", IsCorrect: false},
				},
			},
			{
				Text: "Вопрос 2",
				Answers: []dto.AnswerCreateDTO{
					{Text: "Верный", IsCorrect: true},
					{Text: "Неверный", IsCorrect: false},
				},
			},
		},
	}
}

func TestQuizService_Create_Success(t *testing.T) {
	// Arrange
	quizRepo, _, answerRepo, companyRepo, roleRepo, svc := setupQuizServiceMocks()

	companyRepo.On("GetByID", uint(1)).Return(activeCompany(1, 5), nil)
	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)
	quizRepo.On("CreateWithQuestions", mock.AnythingOfType("*entity.Quiz")).Return(nil)
	answerRepo.On("Update", mock.AnythingOfType("*entity.Answer")).Return(nil)

	// Act
	quiz, err := svc.Create(5, validQuizRequest(1))

	// Assert
	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, uint(5), quiz.AuthorID)
	assert.True(t, quiz.IsActive)
	assert.Len(t, quiz.Questions, 2)
	quizRepo.AssertExpectations(t)
}

func TestQuizService_Create_TooFewQuestions_Validation(t *testing.T) {
	// Arrange: один вопрос вместо минимальных двух
	quizRepo, _, _, companyRepo, roleRepo, svc := setupQuizServiceMocks()

	companyRepo.On("GetByID", uint(1)).Return(activeCompany(1, 5), nil)
	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)

	req := validQuizRequest(1)
	req.Questions = req.Questions[:1]

	// Act
	quiz, err := svc.Create(5, req)

	// Assert
	assert.Nil(t, quiz)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	quizRepo.AssertNotCalled(t, "CreateWithQuestions")
}

func TestQuizService_Create_TooFewAnswers_Validation(t *testing.T) {
	// Arrange: у второго вопроса один вариант ответа
	quizRepo, _, _, companyRepo, roleRepo, svc := setupQuizServiceMocks()

	companyRepo.On("GetByID", uint(1)).Return(activeCompany(1, 5), nil)
	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)

	req := validQuizRequest(1)
	req.Questions[1].Answers = req.Questions[1].Answers[:1]

	// Act
	quiz, err := svc.Create(5, req)

	// Assert
	assert.Nil(t, quiz)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	quizRepo.AssertNotCalled(t, "CreateWithQuestions")
}

func TestQuizService_Create_NoCorrectAnswer_Validation(t *testing.T) {
	// Arrange: у вопроса нет правильного варианта
	quizRepo, _, _, companyRepo, roleRepo, svc := setupQuizServiceMocks()

	companyRepo.On("GetByID", uint(1)).Return(activeCompany(1, 5), nil)
	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)

	req := validQuizRequest(1)
	req.Questions[0].Answers[0].IsCorrect = false

	// Act
	quiz, err := svc.Create(5, req)

	// Assert
	assert.Nil(t, quiz)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	quizRepo.AssertNotCalled(t, "CreateWithQuestions")
}

func TestQuizService_Create_NotManager_Forbidden(t *testing.T) {
	// Arrange: у пользователя роль обычного участника
	quizRepo, _, _, companyRepo, roleRepo, svc := setupQuizServiceMocks()

	companyRepo.On("GetByID", uint(1)).Return(activeCompany(1, 5), nil)
	roleRepo.On("GetActive", uint(9), uint(1)).Return(&entity.CompanyRole{
		UserID: 9, CompanyID: 1, RoleType: entity.RoleTypeUser, IsActive: true,
	}, nil)

	// Act
	quiz, err := svc.Create(9, validQuizRequest(1))

	// Assert
	assert.Nil(t, quiz)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	quizRepo.AssertNotCalled(t, "CreateWithQuestions")
}

func TestQuizService_Update_ProspectiveFrequencyChange(t *testing.T) {
	// Arrange: правка периодичности меняет только поле викторины,
	// прошлые попытки не пересматриваются
	quizRepo, _, _, _, roleRepo, svc := setupQuizServiceMocks()

	existing := &entity.Quiz{ID: 10, CompanyID: 1, FrequencyInDays: 2, IsActive: true}
	newFrequency := 7

	quizRepo.On("GetByID", uint(10)).Return(existing, nil)
	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)
	quizRepo.On("Update", mock.AnythingOfType("*entity.Quiz")).Return(nil)

	// Act
	quiz, err := svc.Update(5, 10, dto.QuizUpdateRequest{FrequencyInDays: &newFrequency})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, quiz.FrequencyInDays)
}

func TestQuizService_Deactivate_NotManager_Forbidden(t *testing.T) {
	// Arrange
	quizRepo, _, _, _, roleRepo, svc := setupQuizServiceMocks()

	quizRepo.On("GetByID", uint(10)).Return(&entity.Quiz{ID: 10, CompanyID: 1, IsActive: true}, nil)
	roleRepo.On("GetActive", uint(9), uint(1)).Return(nil, apperrors.ErrNotFound)

	// Act
	err := svc.Deactivate(9, 10)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	quizRepo.AssertNotCalled(t, "Deactivate")
}

func TestQuizService_UpdateAnswer_TogglesCorrectness(t *testing.T) {
	// Arrange
	quizRepo, _, answerRepo, _, roleRepo, svc := setupQuizServiceMocks()
	isCorrect := true

	answerRepo.On("GetByID", uint(1001)).Return(&entity.Answer{ID: 1001, QuizID: 10, QuestionID: 101, IsCorrect: false}, nil)
	quizRepo.On("GetByID", uint(10)).Return(&entity.Quiz{ID: 10, CompanyID: 1, IsActive: true}, nil)
	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)
	answerRepo.On("Update", mock.AnythingOfType("*entity.Answer")).Return(nil)

	// Act
	answer, err := svc.UpdateAnswer(5, 1001, dto.AnswerUpdateRequest{IsCorrect: &isCorrect})

	// Assert
	require.NoError(t, err)
	assert.True(t, answer.IsCorrect)
	answerRepo.AssertExpectations(t)
}
