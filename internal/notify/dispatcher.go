// Package notify owns preference-gated notification fan-out. Channel
// selection lives here once so every lifecycle event reuses the same rules
// instead of each caller re-deciding who gets what.
package notify

import (
	"context"

	"go.uber.org/zap"

	"roomdesk/internal/domain"
)

type Dispatcher struct {
	settings domain.SettingRepository
	users    domain.UserRepository
	mail     EmailSender
	sms      SMSSender
	push     PushSender
	log      *zap.Logger
}

func NewDispatcher(
	settings domain.SettingRepository,
	users domain.UserRepository,
	mail EmailSender,
	sms SMSSender,
	push PushSender,
	log *zap.Logger,
) *Dispatcher {
	return &Dispatcher{settings: settings, users: users, mail: mail, sms: sms, push: push, log: log}
}

// NotifyUserByPreference fans a module event out to the user's enabled
// channels. It is a no-op when the user has no id, no stored settings, or no
// configuration for the module. A channel is only used when it is both
// enabled and addressable: email needs a template and an address, push needs
// a device token, SMS needs a phone number. Send failures are logged and do
// not stop the remaining channels or surface to the caller.
func (d *Dispatcher) NotifyUserByPreference(
	ctx context.Context,
	user *domain.User,
	module, title, message string,
	emailTemplate string,
	emailContext map[string]any,
) error {
	if user == nil || user.ID == "" {
		return nil
	}
	settings, err := d.settings.FindByUser(user.ID)
	if err != nil {
		return err
	}
	if settings == nil {
		return nil
	}
	prefs, ok := settings.ModulePrefs(module)
	if !ok {
		return nil
	}

	if prefs.Email && user.Email != "" && emailTemplate != "" {
		if err := d.mail.Send(ctx, user.Email, title, emailTemplate, emailContext); err != nil {
			d.log.Error("email send failed", zap.String("user", user.ID), zap.Error(err))
		}
	}
	if prefs.Push && user.FcmToken != "" {
		if err := d.push.Send(ctx, user.FcmToken, title, message); err != nil {
			d.log.Error("push send failed", zap.String("user", user.ID), zap.Error(err))
		}
	}
	if prefs.SMS && user.Phone != "" {
		if err := d.sms.Send(ctx, user.Phone, message); err != nil {
			d.log.Error("sms send failed", zap.String("user", user.ID), zap.Error(err))
		}
	}
	return nil
}

// NotifyAdmins resolves the admin set and notifies each one in turn through
// their own preferences.
func (d *Dispatcher) NotifyAdmins(
	ctx context.Context,
	module, title, message string,
	emailTemplate string,
	emailContext map[string]any,
) error {
	admins, err := d.users.FindAdmins()
	if err != nil {
		return err
	}
	for i := range admins {
		if err := d.NotifyUserByPreference(ctx, &admins[i], module, title, message, emailTemplate, emailContext); err != nil {
			return err
		}
	}
	return nil
}
