package server

// Server объединяет HTTP-обработчики отдельных сущностей.
// История цен подключается только при настроенном хранилище.
type Server struct {
	PriceServer
	history *HistoryServer
}

func NewServer(
	priceServer PriceServer,
	historyServer *HistoryServer,
) Server {
	return Server{
		PriceServer: priceServer,
		history:     historyServer,
	}
}
