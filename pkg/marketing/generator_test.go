package marketing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePostsBareArray(t *testing.T) {
	raw := `[{"dia":1,"plataforma":"Instagram","tema":"Lançamento","legenda":"Novidade! 🍫","hashtags":["#doceria"],"horario_sugerido":"19:00"}]`

	posts, err := ParsePosts([]byte(raw))

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].Day)
	assert.Equal(t, "Instagram", posts[0].Platform)
	assert.Equal(t, []string{"#doceria"}, posts[0].Hashtags)
}

func TestParsePostsWrappedObject(t *testing.T) {
	raw := `{"posts":[{"dia":2,"plataforma":"TikTok","tema":"Bastidores","legenda":"Por trás das trufas","hashtags":[],"horario_sugerido":"12:30"}]}`

	posts, err := ParsePosts([]byte(raw))

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "TikTok", posts[0].Platform)
}

func TestParsePostsEmptyObject(t *testing.T) {
	posts, err := ParsePosts([]byte(`{}`))

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestParsePostsGarbage(t *testing.T) {
	_, err := ParsePosts([]byte(`not json`))

	assert.Error(t, err)
}

func TestBuildPromptDefaultsBusinessName(t *testing.T) {
	prompt := buildPrompt(ScheduleInput{
		BusinessType:   "confeitaria artesanal",
		TargetAudience: "jovens adultos",
		PeriodDays:     7,
		Focus:          "Páscoa",
	})

	assert.True(t, strings.Contains(prompt, "Minha Doceria"))
	assert.True(t, strings.Contains(prompt, "7 posts"))
	assert.True(t, strings.Contains(prompt, "Páscoa"))
}
