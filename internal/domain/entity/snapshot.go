package entity

import "time"

// Snapshot полный нормализованный набор предложений. После публикации не
// изменяется.
type Snapshot struct {
	UpdatedAt time.Time
	Offers    []Offer
}

// Find возвращает опубликованное предложение сервера.
func (s Snapshot) Find(server string) (Offer, bool) {
	for _, o := range s.Offers {
		if o.Server == server {
			return o, true
		}
	}

	return Offer{}, false
}
