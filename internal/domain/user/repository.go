package user

import "context"

// ProfileRepository describes profile persistence needs from use cases.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (Profile, bool, error)
	Save(ctx context.Context, profile Profile) error
}
