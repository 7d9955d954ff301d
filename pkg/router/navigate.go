package router

import "net/url"

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Query values are merged into the target's query string.
	Query url.Values

	// Hash sets the fragment of the target.
	Hash string
}

// NavigateOption is a functional option for NavigateTo.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithQuery adds query parameters to the navigation URL.
func WithQuery(query url.Values) NavigateOption {
	return func(o *NavigateOptions) {
		if o.Query == nil {
			o.Query = url.Values{}
		}
		for k, vs := range query {
			o.Query[k] = append(o.Query[k], vs...)
		}
	}
}

// WithHash sets the fragment of the navigation URL.
func WithHash(hash string) NavigateOption {
	return func(o *NavigateOptions) {
		o.Hash = hash
	}
}

// apply folds the options into target.
func (o NavigateOptions) apply(target Target) Target {
	if len(o.Query) > 0 {
		q := url.Values{}
		for k, vs := range target.Query {
			q[k] = append(q[k], vs...)
		}
		for k, vs := range o.Query {
			q[k] = vs
		}
		target.Query = q
	}
	if o.Hash != "" {
		target.Hash = o.Hash
	}
	return target
}
