package mock

import "io"

// noopRC implements io.ReadCloser with no-op Close.
type noopRC struct{ io.Reader }

func (noopRC) Close() error { return nil }
