package app

import "errors"

// ErrNotLoggedIn is returned when a command needs a signed-in account
var ErrNotLoggedIn = errors.New("not logged in, run `hireboard login` first")
