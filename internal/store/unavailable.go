package store

import "context"

// Unavailable stands in for a missing storage medium. Saves and removes are
// dropped and every load reports absence.
type Unavailable struct{}

func (Unavailable) Save(context.Context, string, any) error { return nil }

func (Unavailable) Load(context.Context, string, any) (bool, error) { return false, nil }

func (Unavailable) Remove(context.Context, string) error { return nil }
