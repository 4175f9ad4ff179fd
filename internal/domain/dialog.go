package domain

type PeerKind int

const (
	PeerUser PeerKind = iota
	PeerGroup
	PeerChannel
)

func (k PeerKind) String() string {
	switch k {
	case PeerUser:
		return "user"
	case PeerGroup:
		return "group"
	case PeerChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Dialog — одна запись из списка чатов аккаунта
type Dialog struct {
	ChatID   int64
	Kind     PeerKind
	Title    string
	Username string
}

// IsGroupOrChannel true для групп, супергрупп и каналов.
func (d Dialog) IsGroupOrChannel() bool {
	return d.Kind == PeerGroup || d.Kind == PeerChannel
}

// DisplayName: для групп заголовок, для людей username (если есть).
func (d Dialog) DisplayName() string {
	if d.Kind == PeerUser && d.Username != "" {
		return d.Username
	}
	return d.Title
}
