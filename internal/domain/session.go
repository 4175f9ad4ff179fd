package domain

import "strings"

// SessionPrefix — префикс каталога сессии в папке sessions: session_<phone>
const SessionPrefix = "session_"

// Session описывает сохранённую сессию TDLib на диске.
// Содержимое каталога принадлежит TDLib, мы знаем только путь и номер.
type Session struct {
	SessionName string
	Phone       string
	Dir         string

	// настройки приложения/устройства
	DeviceModel        string
	SystemVersion      string
	ApplicationVersion string
	LangCode           string

	Proxy *Proxy
}

type Proxy struct {
	Server   string
	Port     int32
	Username string
	Password string
}

// SessionNameForPhone возвращает имя каталога сессии для номера телефона.
func SessionNameForPhone(phone string) string {
	return SessionPrefix + strings.TrimSpace(phone)
}

// PhoneFromSessionName достаёт номер из имени session_<phone>.
func PhoneFromSessionName(name string) (string, bool) {
	if !strings.HasPrefix(name, SessionPrefix) {
		return "", false
	}
	phone := strings.TrimPrefix(name, SessionPrefix)
	return phone, phone != ""
}
