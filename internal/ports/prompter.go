package ports

import "context"

// Prompter — ввод оператора в консоли.
// Отмена ctx прерывает ожидание ответа.
type Prompter interface {
	// Ask печатает вопрос и читает одну строку без перевода строки
	Ask(ctx context.Context, question string) (string, error)
	// AskSecret то же самое, но без эха, если stdin — терминал
	AskSecret(ctx context.Context, question string) (string, error)
}
