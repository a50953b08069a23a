package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисов.
// Все тестовые файлы пакета используют моки из этого файла.
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(userID uint, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAverageScore(userID uint, score int) error {
	args := m.Called(userID, score)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) List(limit, offset int) ([]entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// MockCompanyRepository реализует repository.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(company *entity.Company) error {
	args := m.Called(company)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(id uint) (*entity.Company, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

func (m *MockCompanyRepository) Update(company *entity.Company) error {
	args := m.Called(company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Deactivate(companyID uint) error {
	args := m.Called(companyID)
	return args.Error(0)
}

func (m *MockCompanyRepository) ListVisible(limit, offset int) ([]entity.Company, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Company), args.Error(1)
}

// MockMembershipRepository реализует repository.MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Save(membership *entity.CompanyMembership) error {
	args := m.Called(membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Get(userID, companyID uint) (*entity.CompanyMembership, error) {
	args := m.Called(userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyMembership), args.Error(1)
}

func (m *MockMembershipRepository) ListActive() ([]entity.CompanyMembership, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompanyMembership), args.Error(1)
}

func (m *MockMembershipRepository) ListActiveByCompany(companyID uint) ([]entity.CompanyMembership, error) {
	args := m.Called(companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompanyMembership), args.Error(1)
}

func (m *MockMembershipRepository) Deactivate(userID, companyID uint) error {
	args := m.Called(userID, companyID)
	return args.Error(0)
}

// MockCompanyRequestRepository реализует repository.CompanyRequestRepository
type MockCompanyRequestRepository struct {
	mock.Mock
}

func (m *MockCompanyRequestRepository) Create(request *entity.CompanyRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockCompanyRequestRepository) GetByID(id uint) (*entity.CompanyRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyRequest), args.Error(1)
}

func (m *MockCompanyRequestRepository) GetPending(userID, companyID uint) (*entity.CompanyRequest, error) {
	args := m.Called(userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyRequest), args.Error(1)
}

func (m *MockCompanyRequestRepository) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockCompanyRequestRepository) ListByUser(userID uint) ([]entity.CompanyRequest, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompanyRequest), args.Error(1)
}

func (m *MockCompanyRequestRepository) ListByCompany(companyID uint) ([]entity.CompanyRequest, error) {
	args := m.Called(companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompanyRequest), args.Error(1)
}

// MockCompanyRoleRepository реализует repository.CompanyRoleRepository
type MockCompanyRoleRepository struct {
	mock.Mock
}

func (m *MockCompanyRoleRepository) Save(role *entity.CompanyRole) error {
	args := m.Called(role)
	return args.Error(0)
}

func (m *MockCompanyRoleRepository) GetActive(userID, companyID uint) (*entity.CompanyRole, error) {
	args := m.Called(userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyRole), args.Error(1)
}

func (m *MockCompanyRoleRepository) ListActiveByCompany(companyID uint) ([]entity.CompanyRole, error) {
	args := m.Called(companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompanyRole), args.Error(1)
}

func (m *MockCompanyRoleRepository) Deactivate(userID, companyID uint) error {
	args := m.Called(userID, companyID)
	return args.Error(0)
}

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateWithQuestions(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Deactivate(quizID uint) error {
	args := m.Called(quizID)
	return args.Error(0)
}

func (m *MockQuizRepository) ListActiveByCompany(companyID uint) ([]entity.Quiz, error) {
	args := m.Called(companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(limit, offset int) ([]entity.Quiz, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetActiveByQuizID(quizID uint) ([]entity.Question, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

// MockAnswerRepository реализует repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) GetByID(id uint) (*entity.Answer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Answer), args.Error(1)
}

func (m *MockAnswerRepository) GetByQuestionID(questionID uint) ([]entity.Answer, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Answer), args.Error(1)
}

func (m *MockAnswerRepository) Update(answer *entity.Answer) error {
	args := m.Called(answer)
	return args.Error(0)
}

// MockAnswerLedgerRepository реализует repository.AnswerLedgerRepository
type MockAnswerLedgerRepository struct {
	mock.Mock
}

func (m *MockAnswerLedgerRepository) Append(event *entity.UserAnswer) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockAnswerLedgerRepository) ListByUser(userID uint) ([]entity.UserAnswer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserAnswer), args.Error(1)
}

func (m *MockAnswerLedgerRepository) ListByUserAndQuiz(userID, quizID uint) ([]entity.UserAnswer, error) {
	args := m.Called(userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserAnswer), args.Error(1)
}

// MockResultRepository реализует repository.ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) SaveBatch(results []entity.QuizResult) error {
	args := m.Called(results)
	return args.Error(0)
}

func (m *MockResultRepository) ListByUser(userID uint) ([]entity.QuizResult, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

func (m *MockResultRepository) CountCorrect(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository реализует repository.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(notification *entity.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListUnreadByUser(userID uint) ([]entity.Notification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(userID, notificationID uint) (*entity.Notification, error) {
	args := m.Called(userID, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Notification), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

// MockEmailService реализует EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvitation(ctx context.Context, toEmail, companyName, idempotencyKey string) error {
	args := m.Called(ctx, toEmail, companyName, idempotencyKey)
	return args.Error(0)
}

// MockTokenIssuer реализует TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(user *entity.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
