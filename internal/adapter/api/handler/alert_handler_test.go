package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeline/internal/adapter/api"
	"safeline/internal/domain/entity"
	"safeline/internal/usecase"
	"safeline/pkg/errors"
)

// storeCalls counts every repository call so a test can assert the store was
// never touched.
type storeCalls struct {
	n int32
}

func (s *storeCalls) bump()      { atomic.AddInt32(&s.n, 1) }
func (s *storeCalls) count() int { return int(atomic.LoadInt32(&s.n)) }

type countingConversationRepo struct{ calls *storeCalls }

func (r *countingConversationRepo) Upsert(ctx context.Context, conversation *entity.Conversation) error {
	r.calls.bump()
	return nil
}
func (r *countingConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.calls.bump()
	return nil, errors.NotFound("Conversation", nil)
}
func (r *countingConversationRepo) ListByParticipant(ctx context.Context, phone string) ([]*entity.Conversation, error) {
	r.calls.bump()
	return nil, nil
}
func (r *countingConversationRepo) AppendMessage(ctx context.Context, conversationID string, message *entity.Message) error {
	r.calls.bump()
	return nil
}
func (r *countingConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.calls.bump()
	return nil, 0, nil
}
func (r *countingConversationRepo) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	r.calls.bump()
	return nil
}
func (r *countingConversationRepo) DeleteWithMessages(ctx context.Context, conversationID string) error {
	r.calls.bump()
	return nil
}
func (r *countingConversationRepo) Rekey(ctx context.Context, oldID, newID string) error {
	r.calls.bump()
	return nil
}
func (r *countingConversationRepo) ListenMessages(ctx context.Context, conversationID string) (<-chan []*entity.Message, error) {
	r.calls.bump()
	return nil, nil
}
func (r *countingConversationRepo) ListenByParticipant(ctx context.Context, phone string) (<-chan []*entity.Conversation, error) {
	r.calls.bump()
	return nil, nil
}

type countingContactRepo struct{ calls *storeCalls }

func (r *countingContactRepo) Create(ctx context.Context, contact *entity.EmergencyContact) error {
	r.calls.bump()
	return nil
}
func (r *countingContactRepo) GetByID(ctx context.Context, id string) (*entity.EmergencyContact, error) {
	r.calls.bump()
	return nil, errors.NotFound("Emergency contact", nil)
}
func (r *countingContactRepo) ListByOwner(ctx context.Context, userPhone string) ([]*entity.EmergencyContact, error) {
	r.calls.bump()
	return nil, nil
}
func (r *countingContactRepo) Update(ctx context.Context, contact *entity.EmergencyContact) error {
	r.calls.bump()
	return nil
}
func (r *countingContactRepo) Delete(ctx context.Context, id string) error {
	r.calls.bump()
	return nil
}

type countingProfileRepo struct{ calls *storeCalls }

func (r *countingProfileRepo) GetByPhone(ctx context.Context, phone string) (*entity.Profile, error) {
	r.calls.bump()
	return nil, errors.NotFound("Profile", nil)
}
func (r *countingProfileRepo) Set(ctx context.Context, profile *entity.Profile) error {
	r.calls.bump()
	return nil
}
func (r *countingProfileRepo) Delete(ctx context.Context, phone string) error {
	r.calls.bump()
	return nil
}

func newAlertHandlerFixture() (*AlertHandler, *storeCalls) {
	calls := &storeCalls{}
	uc := usecase.NewAlertUseCase(
		&countingConversationRepo{calls: calls},
		&countingContactRepo{calls: calls},
		&countingProfileRepo{calls: calls},
		nil,
	)
	return NewAlertHandler(uc), calls
}

func postAlert(t *testing.T, h func(echo.Context) error, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = api.NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/v1/alert", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("phone", "+1000")

	require.NoError(t, h(c))
	return rec
}

func TestSendAlertRejectsMissingCoordinates(t *testing.T) {
	h, calls := newAlertHandlerFixture()

	rec := postAlert(t, h.SendAlert, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Equal(t, 0, calls.count())
}

func TestSendAlertRejectsOutOfRangeCoordinates(t *testing.T) {
	h, calls := newAlertHandlerFixture()

	rec := postAlert(t, h.SendAlert, `{"latitude": 200, "longitude": 74.35}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Equal(t, 0, calls.count())
}

func TestShareLocationRejectsMissingCoordinates(t *testing.T) {
	h, calls := newAlertHandlerFixture()

	rec := postAlert(t, h.ShareLocation, `{"latitude": 31.52}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Equal(t, 0, calls.count())
}

func TestSendAlertWithValidCoordinatesReachesStore(t *testing.T) {
	h, calls := newAlertHandlerFixture()

	rec := postAlert(t, h.SendAlert, `{"latitude": 31.5204, "longitude": 74.3587}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Greater(t, calls.count(), 0)
}
