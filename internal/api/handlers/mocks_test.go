package handlers_test

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/utils"
)

// --- Mocks ---

// MockPropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) GetAllProperties(ctx context.Context) ([]models.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) GetProperties(ctx context.Context, filters models.SearchFilters) ([]models.Property, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) GetPropertyByID(ctx context.Context, id utils.SixID) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) GetFeaturedProperties(ctx context.Context) ([]models.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) SearchProperties(ctx context.Context, query string) ([]models.Property, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) GetRecommendations(ctx context.Context, userCtx models.UserContext, subjectID *utils.SixID) ([]models.Recommendation, error) {
	args := m.Called(ctx, userCtx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recommendation), args.Error(1)
}

func (m *MockPropertyService) SetPropertyStatus(ctx context.Context, id utils.SixID, status models.PropertyStatus) (*models.Property, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, username, email, name, password string, role models.UserRole) (*models.User, error) {
	args := m.Called(ctx, username, email, name, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindByID(ctx context.Context, userID utils.SixID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdatePreferences(ctx context.Context, userID utils.SixID, prefs models.UserPreferences) (*models.User, error) {
	args := m.Called(ctx, userID, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ToggleFavorite(ctx context.Context, userID, propertyID utils.SixID) ([]utils.SixID, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]utils.SixID), args.Error(1)
}

func (m *MockUserService) SaveSearch(ctx context.Context, userID utils.SixID, filters models.SearchFilters) error {
	args := m.Called(ctx, userID, filters)
	return args.Error(0)
}

func (m *MockUserService) UserContext(ctx context.Context, userID utils.SixID) (models.UserContext, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.UserContext), args.Error(1)
}

func (m *MockUserService) CreateAlert(ctx context.Context, userID utils.SixID, name string, filters models.SearchFilters) (*models.PropertyAlert, error) {
	args := m.Called(ctx, userID, name, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyAlert), args.Error(1)
}

func (m *MockUserService) GetAlert(ctx context.Context, alertID utils.SixID) (*models.PropertyAlert, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyAlert), args.Error(1)
}

func (m *MockUserService) GetUserAlerts(ctx context.Context, userID utils.SixID) ([]models.PropertyAlert, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyAlert), args.Error(1)
}

func (m *MockUserService) SetAlertActive(ctx context.Context, userID, alertID utils.SixID, active bool) (*models.PropertyAlert, error) {
	args := m.Called(ctx, userID, alertID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyAlert), args.Error(1)
}

func (m *MockUserService) DeleteAlert(ctx context.Context, userID, alertID utils.SixID) error {
	args := m.Called(ctx, userID, alertID)
	return args.Error(0)
}

func (m *MockUserService) MarkAlertNotified(ctx context.Context, alertID utils.SixID) error {
	args := m.Called(ctx, alertID)
	return args.Error(0)
}

func (m *MockUserService) LogActivity(ctx context.Context, userID utils.SixID, action models.ActivityAction, propertyID *utils.SixID) error {
	args := m.Called(ctx, userID, action, propertyID)
	return args.Error(0)
}

func (m *MockUserService) GetUserActivities(ctx context.Context, userID utils.SixID) ([]models.UserActivity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserActivity), args.Error(1)
}

func (m *MockUserService) GetNotifications(ctx context.Context, userID utils.SixID) ([]json.RawMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

// MockAsynqClient
type MockAsynqClient struct {
	mock.Mock
}

func (m *MockAsynqClient) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

// MockAgentService
type MockAgentService struct {
	mock.Mock
}

func (m *MockAgentService) GetAgents(ctx context.Context) ([]models.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Agent), args.Error(1)
}

func (m *MockAgentService) GetAgentByID(ctx context.Context, agentID utils.SixID) (*models.Agent, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

// MockChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) ProcessMessage(ctx context.Context, text string) ([]models.ChatMessage, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}
