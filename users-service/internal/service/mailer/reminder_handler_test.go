package mailer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	contracts "github.com/Yahya-git/To-Do-List-MS/contracts/mq"
	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/model"
)

type fakeSender struct {
	to      string
	subject string
	body    string
	calls   int
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	f.calls++
	return nil
}

type fakeLookup struct {
	users map[int]*model.User
}

func (f *fakeLookup) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, httperr.ErrNotFound
	}
	return u, nil
}

func TestHandle_MailsResolvedUser(t *testing.T) {
	sender := &fakeSender{}
	lookup := &fakeLookup{users: map[int]*model.User{7: {ID: 7, Email: "u@e.com"}}}
	h := NewReminderHandler(lookup, NewMailer(sender, "http://gw", zap.NewNop()), zap.NewNop())

	payload, _ := json.Marshal(contracts.TaskReminderDuePayload{
		UserID: 7,
		Tasks: []contracts.ReminderTask{
			{Title: "pay rent", DueDate: time.Now()},
			{Title: "water plants", Description: "balcony", DueDate: time.Now()},
		},
	})

	require.NoError(t, h.Handle(context.Background(), payload))
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "u@e.com", sender.to)
	assert.Contains(t, sender.subject, "2 task(s)")
	assert.Contains(t, sender.body, "pay rent")
	assert.Contains(t, sender.body, "water plants: balcony")
}

func TestHandle_UnknownUserErrorsForRequeue(t *testing.T) {
	sender := &fakeSender{}
	h := NewReminderHandler(&fakeLookup{users: map[int]*model.User{}}, NewMailer(sender, "http://gw", zap.NewNop()), zap.NewNop())

	payload, _ := json.Marshal(contracts.TaskReminderDuePayload{
		UserID: 1,
		Tasks:  []contracts.ReminderTask{{Title: "x", DueDate: time.Now()}},
	})

	assert.Error(t, h.Handle(context.Background(), payload))
	assert.Equal(t, 0, sender.calls)
}

func TestHandle_BadPayload(t *testing.T) {
	h := NewReminderHandler(&fakeLookup{}, NewMailer(&fakeSender{}, "", zap.NewNop()), zap.NewNop())
	assert.Error(t, h.Handle(context.Background(), []byte("not-json")))
}

func TestHandle_EmptyTaskListSkipped(t *testing.T) {
	sender := &fakeSender{}
	h := NewReminderHandler(&fakeLookup{}, NewMailer(sender, "", zap.NewNop()), zap.NewNop())

	payload, _ := json.Marshal(contracts.TaskReminderDuePayload{UserID: 1})
	require.NoError(t, h.Handle(context.Background(), payload))
	assert.Equal(t, 0, sender.calls)
}
