package tg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
	"github.com/zelenin/go-tdlib/client"
)

// authAPI — часть *client.Client, которая нужна для входа
type authAPI interface {
	SetTdlibParameters(req *client.SetTdlibParametersRequest) (*client.Ok, error)
	SetAuthenticationPhoneNumber(req *client.SetAuthenticationPhoneNumberRequest) (*client.Ok, error)
	CheckAuthenticationCode(req *client.CheckAuthenticationCodeRequest) (*client.Ok, error)
	CheckAuthenticationPassword(req *client.CheckAuthenticationPasswordRequest) (*client.Ok, error)
}

// authorizer реализует client.AuthorizationStateHandler.
// Ошибка из Handle закрывает клиента, и NewClient возвращает эту ошибку.
// Возврат nil при неверном коде оставляет TDLib в WaitCode, и код спрашивается снова.
type authorizer struct {
	ctx    context.Context // отмена прерывает ожидание кода и пароля
	params *client.SetTdlibParametersRequest
	phone  string
	mode   ports.ClientMode
	prompt ports.Prompter
	out    io.Writer
	logger *slog.Logger

	state domain.LoginState
}

func newAuthorizer(
	ctx context.Context,
	params *client.SetTdlibParametersRequest,
	phone string,
	mode ports.ClientMode,
	prompt ports.Prompter,
	out io.Writer,
	log *slog.Logger,
) *authorizer {
	return &authorizer{
		ctx:    ctx,
		params: params,
		phone:  phone,
		mode:   mode,
		prompt: prompt,
		out:    out,
		logger: log,
		state:  domain.LoginUnauthenticated,
	}
}

func (a *authorizer) Handle(c *client.Client, state client.AuthorizationState) error {
	return a.handle(c, state)
}

func (a *authorizer) Close() {}

func (a *authorizer) State() domain.LoginState {
	return a.state
}

func (a *authorizer) handle(api authAPI, state client.AuthorizationState) error {
	a.logger.Debug("authorization state", "state", state.AuthorizationStateType(), "login_state", a.state)

	switch state.AuthorizationStateType() {
	case client.TypeAuthorizationStateWaitTdlibParameters:
		_, err := api.SetTdlibParameters(a.params)
		if err != nil {
			return fmt.Errorf("SetTdlibParameters: %w", err)
		}
		return nil

	case client.TypeAuthorizationStateWaitPhoneNumber:
		if a.mode != ports.ClientModeAuth || a.phone == "" {
			return a.abandon(domain.ErrNotAuthorized)
		}
		_, err := api.SetAuthenticationPhoneNumber(&client.SetAuthenticationPhoneNumberRequest{
			PhoneNumber: a.phone,
			Settings: &client.PhoneNumberAuthenticationSettings{
				AllowFlashCall:       false,
				IsCurrentPhoneNumber: false,
			},
		})
		if err = classify(err); err != nil {
			if errors.Is(err, domain.ErrPhoneOccupied) {
				fmt.Fprintln(a.out, "Phone number is already in use.")
				return a.abandon(domain.ErrPhoneOccupied)
			}
			return a.abandon(fmt.Errorf("SetAuthenticationPhoneNumber: %w", err))
		}
		a.setState(domain.LoginPendingCode)
		return nil

	case client.TypeAuthorizationStateWaitCode:
		if a.mode != ports.ClientModeAuth {
			return a.abandon(domain.ErrNotAuthorized)
		}
		a.setState(domain.LoginPendingCode)
		code, err := a.prompt.Ask(a.ctx, "Enter the code you received: ")
		if err != nil {
			return a.abandon(fmt.Errorf("read code: %w", err))
		}
		_, err = api.CheckAuthenticationCode(&client.CheckAuthenticationCodeRequest{
			Code: code,
		})
		err = classify(err)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, domain.ErrInvalidCode):
			// остаёмся в WaitCode, TDLib спросит снова
			fmt.Fprintln(a.out, "Incorrect code. Please try again.")
			a.logger.Info("invalid code entered", "error", err)
			return nil
		case errors.Is(err, domain.ErrPhoneOccupied):
			fmt.Fprintln(a.out, "Phone number is already in use.")
			return a.abandon(domain.ErrPhoneOccupied)
		default:
			return a.abandon(fmt.Errorf("CheckAuthenticationCode: %w", err))
		}

	case client.TypeAuthorizationStateWaitPassword:
		if a.mode != ports.ClientModeAuth {
			return a.abandon(domain.ErrNotAuthorized)
		}
		password, err := a.prompt.AskSecret(a.ctx, "Two-step verification is enabled. Please enter your password: ")
		if err != nil {
			return a.abandon(fmt.Errorf("read password: %w", err))
		}
		_, err = api.CheckAuthenticationPassword(&client.CheckAuthenticationPasswordRequest{
			Password: password,
		})
		if err != nil {
			return a.abandon(fmt.Errorf("CheckAuthenticationPassword: %w", err))
		}
		return nil

	case client.TypeAuthorizationStateReady:
		a.setState(domain.LoginAuthenticated)
		return nil

	case client.TypeAuthorizationStateLoggingOut, client.TypeAuthorizationStateClosing:
		return nil

	default:
		// регистрация, e-mail, QR и т.п. не поддерживаем
		return a.abandon(fmt.Errorf("%w: unsupported authorization state %s",
			domain.ErrNotAuthorized, state.AuthorizationStateType()))
	}
}

func (a *authorizer) setState(s domain.LoginState) {
	if a.state == s {
		return
	}
	a.logger.Info("login state changed", "from", a.state, "to", s)
	a.state = s
}

func (a *authorizer) abandon(err error) error {
	if a.state == domain.LoginPendingCode {
		a.setState(domain.LoginAbandoned)
	}
	return err
}
