package domain

// TurnReport - что произошло при передаче хода.
// Новые значения пулов отдаются наружу, чтобы клиент сбросил старую подсветку.
type TurnReport struct {
	Current    UnitID   `json:"current"`
	Movement   int      `json:"movement"`
	Action     int      `json:"action"`
	Casualties []UnitID `json:"casualties,omitempty"` // погибли от эффектов в начале своего хода
	Messages   []string `json:"messages,omitempty"`
}
