package wikitext

func apply[T any](v T, transformers ...func(T) (T, error)) (T, error) {
	var err error
	for _, f := range transformers {
		if v, err = f(v); err != nil {
			return v, err
		}
	}
	return v, nil
}

// ToHTML parses raw wikitext and renders it in one step: the common
// path for hosts that do not inspect the tree. The exceptions collected
// during parsing are returned so the caller can surface them as inline
// warnings; the document still renders. Only fatal parse conditions
// return an error, with an empty Output.
//
// The call is synchronous and pure; the host is responsible for any
// wall-clock timeout around it.
func ToHTML(src string, opts Options) (Output, []Exception, error) {
	tree, exceptions, err := ParseLogger(opts.Logger, src)
	if err != nil {
		return Output{}, nil, err
	}
	return Render(tree, opts), exceptions, nil
}
