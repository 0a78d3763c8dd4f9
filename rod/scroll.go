package rod

import "github.com/go-rod/rod"

// pageScroller adapts a rod page to the scroller interface.
type pageScroller struct {
	page *rod.Page
}

func (p pageScroller) ScrollToBottom() error {
	_, err := p.page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return err
}

func (p pageScroller) ScrollHeight() (int, error) {
	res, err := p.page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}
