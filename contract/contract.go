//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"noping/domain"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IdentityResolver looks up the profile behind a user id.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (domain.Profile, error)
}

// Relay posts, updates and removes messages on the chat platform.
// Update and Delete return errors.ErrMessageNotFound when the location is gone.
type Relay interface {
	Post(ctx context.Context, message domain.Outgoing) (domain.Location, error)
	Update(ctx context.Context, location domain.Location, message domain.Rendered) error
	Delete(ctx context.Context, location domain.Location) error
}
