package appointment

import "context"

type SlotKey struct {
	BarberID uint
	Date     string
	Duration int
	Step     int
}

// SlotCache guarda listas de slots já calculadas. Qualquer escrita em
// agendamentos invalida tudo.
//
// Get devolve a geração lida mesmo em miss; Set grava nessa geração, de
// modo que uma invalidação ocorrida durante o cálculo descarta o valor.
// Geração negativa significa que não há onde gravar.
type SlotCache interface {
	Get(ctx context.Context, key SlotKey) (slots []string, gen int64, ok bool)
	Set(ctx context.Context, key SlotKey, gen int64, slots []string)
	Invalidate(ctx context.Context) error
}

type NopSlotCache struct{}

func (NopSlotCache) Get(context.Context, SlotKey) ([]string, int64, bool) { return nil, -1, false }
func (NopSlotCache) Set(context.Context, SlotKey, int64, []string)        {}
func (NopSlotCache) Invalidate(context.Context) error                     { return nil }
