package chain

// httpFactory builds HTTPClients sharing the same base options across a set
// of endpoints, mirroring the controller's Provider/Factory split.
type httpFactory struct {
	opts Opts
}

// NewHTTPFactory returns a Factory producing HTTPClients with shared
// defaults, parameterized only by the endpoint list passed to NewClient.
func NewHTTPFactory(opts Opts) Factory {
	return &httpFactory{opts: opts}
}

func (f *httpFactory) NewClient(endpoints []string) Client {
	o := f.opts
	o.Endpoints = endpoints
	return NewHTTPWithOpts(o)
}
