package middleware

import "time"

// now is a package-level indirection so tests can freeze the request clock.
var now = time.Now
