package dashboard

import "errors"

// ErrNoAnalyst reports a chat request when no AI collaborator is wired,
// e.g. in headless snapshot runs.
var ErrNoAnalyst = errors.New("ai collaborator not configured")
