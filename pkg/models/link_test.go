package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type page struct{ url string }

func (p *page) AbsoluteURL() string { return p.url }

func TestLinkTarget_AbsoluteURL(t *testing.T) {
	target := &page{url: "/pages/about/"}

	u, ok := LinkTarget{URL: "https://example.com", Object: target}.AbsoluteURL()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", u)

	u, ok = LinkTarget{Object: target}.AbsoluteURL()
	assert.True(t, ok)
	assert.Equal(t, "/pages/about/", u)

	_, ok = LinkTarget{Object: &page{}}.AbsoluteURL()
	assert.False(t, ok)

	_, ok = LinkTarget{}.AbsoluteURL()
	assert.False(t, ok)
}

func TestLinkTarget_Validate(t *testing.T) {
	owner := &page{url: "/a/"}
	other := &page{url: "/b/"}

	assert.ErrorIs(t, LinkTarget{Object: owner}.Validate(owner), ErrSelfLink)
	assert.NoError(t, LinkTarget{Object: other}.Validate(owner))
	assert.NoError(t, LinkTarget{URL: "/c/"}.Validate(owner))
}

func TestEntity_WithDefaults(t *testing.T) {
	e := Entity{Identifier: "blog_post", DisplayNameOverride: "Story"}
	got := e.WithDefaults(Entity{DisplayNameOverride: "Article", SlugOverride: "articles", App: "news"})

	assert.Equal(t, Entity{
		Identifier:          "blog_post",
		App:                 "news",
		DisplayNameOverride: "Story",
		SlugOverride:        "articles",
	}, got)
}
