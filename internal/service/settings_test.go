package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"roomdesk/internal/domain"
	"roomdesk/internal/repo"
)

func TestCreateDefaults(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantSMS bool
	}{
		{"sms on when a phone is stored", "+33612345678", true},
		{"sms off without a phone", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &repo.MockSettingRepo{}
			svc := NewSettingsService(settings)

			var created *domain.AccountSetting
			settings.On("Create", mock.AnythingOfType("*domain.AccountSetting")).
				Run(func(args mock.Arguments) { created = args.Get(0).(*domain.AccountSetting) }).
				Return(nil)

			err := svc.CreateDefaults(&domain.User{ID: "u1", Phone: tt.phone})
			assert.NoError(t, err)
			assert.Equal(t, "u1", created.UserID)
			assert.Equal(t, domain.LangFR, created.Language)
			assert.Equal(t, domain.ModeLight, created.Mode)

			prefs, ok := created.ModulePrefs(domain.ModuleBooking)
			assert.True(t, ok)
			assert.True(t, prefs.Email)
			assert.True(t, prefs.Push)
			assert.Equal(t, tt.wantSMS, prefs.SMS)
		})
	}
}

func TestUpdateByUserFlatMerge(t *testing.T) {
	stored := func() *domain.AccountSetting {
		return &domain.AccountSetting{
			ID:       "s1",
			UserID:   "u1",
			Language: domain.LangFR,
			Mode:     domain.ModeLight,
			NotificationPreferences: domain.NotificationPreferences{
				domain.ModuleBooking: {Email: true, Push: true, SMS: true},
			},
		}
	}

	t.Run("omitting preferences leaves them untouched", func(t *testing.T) {
		settings := &repo.MockSettingRepo{}
		svc := NewSettingsService(settings)
		settings.On("FindByUser", "u1").Return(stored(), nil)
		settings.On("Update", mock.Anything).Return(nil)

		lang := domain.LangEN
		out, err := svc.UpdateByUser("u1", UpdateSettingInput{Language: &lang})
		assert.NoError(t, err)
		assert.Equal(t, domain.LangEN, out.Language)
		assert.Equal(t, domain.ModeLight, out.Mode)
		prefs, _ := out.ModulePrefs(domain.ModuleBooking)
		assert.True(t, prefs.SMS)
	})

	t.Run("supplying preferences replaces the map wholesale", func(t *testing.T) {
		settings := &repo.MockSettingRepo{}
		svc := NewSettingsService(settings)
		settings.On("FindByUser", "u1").Return(stored(), nil)
		settings.On("Update", mock.Anything).Return(nil)

		out, err := svc.UpdateByUser("u1", UpdateSettingInput{
			NotificationPreferences: domain.NotificationPreferences{
				domain.ModuleBooking: {Email: false, Push: true, SMS: false},
			},
		})
		assert.NoError(t, err)
		prefs, ok := out.ModulePrefs(domain.ModuleBooking)
		assert.True(t, ok)
		assert.False(t, prefs.Email)
		assert.True(t, prefs.Push)
		assert.False(t, prefs.SMS)
		// Untouched top-level fields survive the merge.
		assert.Equal(t, domain.LangFR, out.Language)
	})

	t.Run("unknown user is not-found", func(t *testing.T) {
		settings := &repo.MockSettingRepo{}
		svc := NewSettingsService(settings)
		settings.On("FindByUser", "ghost").Return(nil, nil)

		_, err := svc.UpdateByUser("ghost", UpdateSettingInput{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
