package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"roomdesk/internal/domain"
	"roomdesk/internal/repo"
)

type mockEmail struct{ mock.Mock }

func (m *mockEmail) Send(ctx context.Context, to, subject, template string, tmplContext map[string]any) error {
	return m.Called(ctx, to, subject, template, tmplContext).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) Send(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

type mockPush struct{ mock.Mock }

func (m *mockPush) Send(ctx context.Context, deviceToken, title, body string) error {
	return m.Called(ctx, deviceToken, title, body).Error(0)
}

type fixture struct {
	d        *Dispatcher
	settings *repo.MockSettingRepo
	users    *repo.MockUserRepo
	mail     *mockEmail
	sms      *mockSMS
	push     *mockPush
}

func newFixture() *fixture {
	f := &fixture{
		settings: &repo.MockSettingRepo{},
		users:    &repo.MockUserRepo{},
		mail:     &mockEmail{},
		sms:      &mockSMS{},
		push:     &mockPush{},
	}
	f.d = NewDispatcher(f.settings, f.users, f.mail, f.sms, f.push, zap.NewNop())
	return f
}

func (f *fixture) assertNoSends(t *testing.T) {
	t.Helper()
	f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	f.push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func settingsWith(prefs domain.ChannelPrefs) *domain.AccountSetting {
	return &domain.AccountSetting{
		UserID:                  "u1",
		NotificationPreferences: domain.NotificationPreferences{domain.ModuleBooking: prefs},
	}
}

var fullUser = domain.User{
	ID:       "u1",
	Email:    "u1@x.io",
	Phone:    "+33612345678",
	FcmToken: "fcm-tok",
}

func TestNotifySilentWithoutIdentityOrSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("nil user", func(t *testing.T) {
		f := newFixture()
		assert.NoError(t, f.d.NotifyUserByPreference(ctx, nil, domain.ModuleBooking, "t", "m", "tpl", nil))
		f.assertNoSends(t)
	})

	t.Run("user without id", func(t *testing.T) {
		f := newFixture()
		assert.NoError(t, f.d.NotifyUserByPreference(ctx, &domain.User{}, domain.ModuleBooking, "t", "m", "tpl", nil))
		f.assertNoSends(t)
	})

	t.Run("no stored settings", func(t *testing.T) {
		f := newFixture()
		f.settings.On("FindByUser", "u1").Return(nil, nil)
		u := fullUser
		assert.NoError(t, f.d.NotifyUserByPreference(ctx, &u, domain.ModuleBooking, "t", "m", "tpl", nil))
		f.assertNoSends(t)
	})

	t.Run("module not configured", func(t *testing.T) {
		f := newFixture()
		f.settings.On("FindByUser", "u1").Return(&domain.AccountSetting{UserID: "u1"}, nil)
		u := fullUser
		assert.NoError(t, f.d.NotifyUserByPreference(ctx, &u, domain.ModuleBooking, "t", "m", "tpl", nil))
		f.assertNoSends(t)
	})

	t.Run("settings lookup failure surfaces", func(t *testing.T) {
		f := newFixture()
		f.settings.On("FindByUser", "u1").Return(nil, errors.New("db down"))
		u := fullUser
		assert.Error(t, f.d.NotifyUserByPreference(ctx, &u, domain.ModuleBooking, "t", "m", "tpl", nil))
	})
}

func TestNotifyChannelGating(t *testing.T) {
	ctx := context.Background()

	t.Run("all channels enabled and addressable", func(t *testing.T) {
		f := newFixture()
		f.settings.On("FindByUser", "u1").
			Return(settingsWith(domain.ChannelPrefs{Email: true, Push: true, SMS: true}), nil)
		f.mail.On("Send", ctx, "u1@x.io", "Title", "tpl", mock.Anything).Return(nil)
		f.push.On("Send", ctx, "fcm-tok", "Title", "Body").Return(nil)
		f.sms.On("Send", ctx, "+33612345678", "Body").Return(nil)

		u := fullUser
		assert.NoError(t, f.d.NotifyUserByPreference(ctx, &u, domain.ModuleBooking, "Title", "Body", "tpl", nil))
		f.mail.AssertExpectations(t)
		f.push.AssertExpectations(t)
		f.sms.AssertExpectations(t)
	})

	t.Run("disabled channels stay quiet", func(t *testing.T) {
		f := newFixture()
		f.settings.On("FindByUser", "u1").
			Return(settingsWith(domain.ChannelPrefs{Email: false, Push: false, SMS: true}), nil)
		f.sms.On("Send", ctx, "+33612345678", "Body").Return(nil)

		u := fullUser
		assert.NoError(t, f.d.NotifyUserByPreference(ctx, &u, domain.ModuleBooking, "Title", "Body", "tpl", nil))
		f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("enabled but unaddressable channels are skipped", func(t *testing.T) {
		f := newFixture()
		f.settings.On("FindByUser", "u1").
			Return(settingsWith(domain.ChannelPrefs{Email: true, Push: true, SMS: true}), nil)
		f.mail.On("Send", ctx, "u1@x.io", "Title", "tpl", mock.Anything).Return(nil)

		u := fullUser
		u.Phone = ""
		u.FcmToken = ""
		assert.NoError(t, f.d.NotifyUserByPreference(ctx, &u, domain.ModuleBooking, "Title", "Body", "tpl", nil))
		f.sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
		f.push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("email needs a template", func(t *testing.T) {
		f := newFixture()
		f.settings.On("FindByUser", "u1").
			Return(settingsWith(domain.ChannelPrefs{Email: true}), nil)

		u := fullUser
		assert.NoError(t, f.d.NotifyUserByPreference(ctx, &u, domain.ModuleBooking, "Title", "Body", "", nil))
		f.assertNoSends(t)
	})
}

func TestNotifySendFailureDoesNotStopOtherChannels(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.settings.On("FindByUser", "u1").
		Return(settingsWith(domain.ChannelPrefs{Email: true, Push: true, SMS: true}), nil)
	f.mail.On("Send", ctx, "u1@x.io", "Title", "tpl", mock.Anything).Return(errors.New("550"))
	f.push.On("Send", ctx, "fcm-tok", "Title", "Body").Return(errors.New("fcm 503"))
	f.sms.On("Send", ctx, "+33612345678", "Body").Return(nil)

	u := fullUser
	assert.NoError(t, f.d.NotifyUserByPreference(ctx, &u, domain.ModuleBooking, "Title", "Body", "tpl", nil))
	f.sms.AssertExpectations(t)
}

func TestNotifyAdminsFansOutPerAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.users.On("FindAdmins").Return([]domain.User{
		{ID: "a1", Email: "a1@x.io"},
		{ID: "a2", Email: "a2@x.io"},
	}, nil)
	f.settings.On("FindByUser", "a1").
		Return(&domain.AccountSetting{UserID: "a1", NotificationPreferences: domain.NotificationPreferences{
			domain.ModuleBooking: {Email: true},
		}}, nil)
	// Second admin opted out entirely.
	f.settings.On("FindByUser", "a2").Return(nil, nil)
	f.mail.On("Send", ctx, "a1@x.io", "Title", "tpl", mock.Anything).Return(nil)

	err := f.d.NotifyAdmins(ctx, domain.ModuleBooking, "Title", "Body", "tpl", nil)
	assert.NoError(t, err)
	f.mail.AssertNumberOfCalls(t, "Send", 1)
}
