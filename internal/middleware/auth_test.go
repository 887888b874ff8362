package middleware

import (
	"fmt"
	"testing"

	"lexideck/internal/service"
	"lexideck/internal/testutil"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

// fakeContext implements the parts of tele.Context the middleware touches
type fakeContext struct {
	tele.Context
	sender    *tele.User
	message   *tele.Message
	callback  *tele.Callback
	sent      []interface{}
	responded []*tele.CallbackResponse
	store     map[string]interface{}
}

func (c *fakeContext) Set(key string, val interface{}) {
	if c.store == nil {
		c.store = make(map[string]interface{})
	}
	c.store[key] = val
}

func (c *fakeContext) Sender() *tele.User       { return c.sender }
func (c *fakeContext) Message() *tele.Message   { return c.message }
func (c *fakeContext) Callback() *tele.Callback { return c.callback }

func (c *fakeContext) Text() string {
	if c.message == nil {
		return ""
	}
	return c.message.Text
}

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.responded = append(c.responded, resp...)
	return nil
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		authorized    bool
		ensureError   error
		text          string
		callback      bool
		expectNext    bool
		expectSent    bool
		expectAlerted bool
		expectText    string
	}{
		{
			name:       "authorized user passes",
			authorized: true,
			text:       "hello",
			expectNext: true,
		},
		{
			name:       "authorized callback passes",
			authorized: true,
			callback:   true,
			expectNext: true,
		},
		{
			name:       "unauthorized start passes",
			text:       "/start",
			expectNext: true,
		},
		{
			name:       "unauthorized text is a password attempt",
			text:       "secret",
			expectNext: true,
		},
		{
			name:       "unauthorized command is blocked",
			text:       "/decks",
			expectSent: true,
			expectText: MsgAskPassword,
		},
		{
			name:          "unauthorized callback is blocked",
			callback:      true,
			expectAlerted: true,
		},
		{
			name:        "repository error",
			ensureError: fmt.Errorf("db error"),
			text:        "hello",
			expectSent:  true,
			expectText:  MsgError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.ensureError != nil {
				mockRepo.On("Ensure", int64(42)).Return(nil, tt.ensureError)
			} else {
				mockRepo.On("Ensure", int64(42)).Return(testutil.NewTestUser(42, tt.authorized), nil)
			}
			authService := service.NewAuthService(mockRepo, "secret")

			c := &fakeContext{sender: &tele.User{ID: 42}}
			if tt.callback {
				c.callback = &tele.Callback{Data: "decks"}
				c.message = &tele.Message{Text: "Main menu"}
			} else {
				c.message = &tele.Message{Text: tt.text}
			}

			called := false
			next := func(tele.Context) error {
				called = true
				return nil
			}

			err := AuthMiddleware(authService, testutil.NewTestLogger())(next)(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectNext, called)
			assert.Equal(t, tt.expectSent, len(c.sent) > 0)
			assert.Equal(t, tt.expectAlerted, len(c.responded) > 0)
			if tt.expectText != "" {
				assert.Equal(t, []interface{}{tt.expectText}, c.sent)
			}
			if tt.expectAlerted {
				assert.Equal(t, MsgAskPassword, c.responded[0].Text)
			}
			if tt.ensureError == nil {
				assert.NotNil(t, c.store[UserKey])
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
