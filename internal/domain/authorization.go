package domain

// ActiveSession — одна активная авторизация аккаунта (устройство, где выполнен вход).
type ActiveSession struct {
	ID          int64
	Current     bool
	DeviceModel string
	Application string
	Country     string
}

type TerminationOutcome int

const (
	TerminationSucceeded TerminationOutcome = iota
	TerminationTooNew
	TerminationFailed
)

func (o TerminationOutcome) String() string {
	switch o {
	case TerminationSucceeded:
		return "succeeded"
	case TerminationTooNew:
		return "too_new"
	default:
		return "failed"
	}
}

// LoginState — состояние сессии во время входа
type LoginState int

const (
	LoginUnauthenticated LoginState = iota
	LoginPendingCode
	LoginAuthenticated
	LoginAbandoned
)

func (s LoginState) String() string {
	switch s {
	case LoginUnauthenticated:
		return "unauthenticated"
	case LoginPendingCode:
		return "pending_code"
	case LoginAuthenticated:
		return "authenticated"
	case LoginAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}
