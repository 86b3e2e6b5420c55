package pagination

// Response is the body of a paged collection: one page of items plus the
// metadata a client needs to request the next one.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse pairs a page with its metadata. A nil page still encodes as [].
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = make([]T, 0)
	}
	return Response[T]{Data: data, Pagination: metadata}
}
