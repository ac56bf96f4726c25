package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

var _ repository.UserRepository = (*RetryingUserRepo)(nil)

// RetryingUserRepo reintenta con backoff exponencial los errores transitorios del almacén
// en el camino de login/registro. La bitácora no pasa por aquí: es best-effort sin reintentos.
type RetryingUserRepo struct {
	next       repository.UserRepository
	maxRetries uint64
	transient  func(error) bool
}

// NewRetryingUserRepository envuelve next. maxRetries 0 desactiva los reintentos.
func NewRetryingUserRepository(next repository.UserRepository, maxRetries int) *RetryingUserRepo {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingUserRepo{next: next, maxRetries: uint64(maxRetries), transient: IsTransient}
}

func (r *RetryingUserRepo) Create(ctx context.Context, user *entity.User) error {
	// Un INSERT que falló por conexión pudo haberse aplicado; el reintento lo detecta como
	// duplicado y el caller lo ve como ErrEmailAlreadyExists.
	return r.do(ctx, func() error { return r.next.Create(ctx, user) })
}

func (r *RetryingUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.do(ctx, func() (err error) {
		out, err = r.next.GetByID(ctx, id)
		return err
	})
	return out, err
}

func (r *RetryingUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.do(ctx, func() (err error) {
		out, err = r.next.FindByEmail(ctx, email)
		return err
	})
	return out, err
}

func (r *RetryingUserRepo) do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 3 * time.Second

	return backoff.Retry(func() error {
		err := op()
		if err != nil && !r.transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, r.maxRetries), ctx))
}
