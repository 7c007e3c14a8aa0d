// Package localcache expone la caché local del servicio detrás de un actor
// de escritor único: toda secuencia leer-modificar-escribir se ejecuta en una
// sola goroutine, de modo que mutaciones concurrentes (crear y revocar una
// invitación a la vez) no pueden pisarse. La serialización deja de depender
// de que el llamador se discipline.
package localcache

import (
	"context"

	"github.com/jhoicas/Directorio-api/internal/application/ports"
)

// Claves fijas del almacén local.
const (
	KeyInvitations = "invitations"
	KeySession     = "session"
)

// Actor serializa el acceso a un ports.Cache en una única goroutine.
type Actor struct {
	backend ports.Cache
	ops     chan func()
}

// NewActor arranca la goroutine del actor sobre el backend dado.
func NewActor(backend ports.Cache) *Actor {
	a := &Actor{backend: backend, ops: make(chan func())}
	go a.loop()
	return a
}

func (a *Actor) loop() {
	for op := range a.ops {
		op()
	}
}

// Close detiene la goroutine del actor. No debe haber llamadas en vuelo.
func (a *Actor) Close() {
	close(a.ops)
}

// run ejecuta fn dentro del actor y espera su resultado.
func (a *Actor) run(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	select {
	case a.ops <- func() { errCh <- fn() }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get lee una clave a través del actor.
func (a *Actor) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := a.run(ctx, func() error {
		v, err := a.backend.Get(ctx, key)
		out = v
		return err
	})
	return out, err
}

// Set escribe una clave a través del actor.
func (a *Actor) Set(ctx context.Context, key string, value []byte) error {
	return a.run(ctx, func() error {
		return a.backend.Set(ctx, key, value)
	})
}

// Update ejecuta una secuencia leer-modificar-escribir atómica respecto a
// cualquier otro acceso por este actor. fn recibe el valor actual (nil si la
// clave no existe) y devuelve el valor nuevo.
func (a *Actor) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	return a.run(ctx, func() error {
		current, err := a.backend.Get(ctx, key)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return a.backend.Set(ctx, key, next)
	})
}
