package gridtext

// GridOption configures a Grid during creation.
//
// Example:
//
//	g := gridtext.NewGrid(20, 800, 600, gridtext.WithWidthFold())
type GridOption func(*gridOptions)

// gridOptions holds optional configuration for Grid creation.
type gridOptions struct {
	widthFold bool
}

// defaultGridOptions returns the default grid options.
func defaultGridOptions() gridOptions {
	return gridOptions{}
}

// WithWidthFold folds inserted text to its narrow form before it is stored,
// so full-width ASCII variants such as U+FF21 land on the atlas glyph for
// 'A' instead of the blank cell. Folding maps one rune to one rune, so Pop
// still undoes InsertText character by character.
func WithWidthFold() GridOption {
	return func(o *gridOptions) {
		o.widthFold = true
	}
}
