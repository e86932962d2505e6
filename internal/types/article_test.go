//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSection_WordCount(t *testing.T) {
	assert.Equal(t, 4, Section{Heading: "Intro", Body: "four words right here"}.WordCount())
	assert.Equal(t, 0, Section{Heading: "Empty"}.WordCount())
	assert.Equal(t, 2, Section{Body: "  spaced   out  "}.WordCount())
}

func TestArticle_RecountWords(t *testing.T) {
	article := Article{
		Sections: []Section{
			{Heading: "One", Body: "a b c"},
			{Heading: "Two", Body: "d e"},
		},
	}
	article.RecountWords()
	assert.Equal(t, 5, article.TotalWordCount)

	sum := 0
	for _, s := range article.Sections {
		sum += s.WordCount()
	}
	assert.Equal(t, sum, article.TotalWordCount)
}

func TestTaskStatus_Terminal(t *testing.T) {
	assert.False(t, TaskQueued.Terminal())
	assert.False(t, TaskProcessing.Terminal())
	assert.True(t, TaskCompleted.Terminal())
	assert.True(t, TaskFailed.Terminal())
}

func TestValidContentType(t *testing.T) {
	for _, ct := range []ContentType{ContentGuide, ContentListicle, ContentComparison, ContentHowTo, ContentNews, ContentReview} {
		assert.True(t, ValidContentType(ct))
	}
	assert.False(t, ValidContentType(ContentType("blog_post")))
	assert.False(t, ValidContentType(ContentType("")))
}
