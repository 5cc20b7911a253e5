package principal

// Principal is the authenticated caller, threaded explicitly through every
// service call rather than looked up ambiently.
type Principal struct {
	UserID int64
	Email  string
}
