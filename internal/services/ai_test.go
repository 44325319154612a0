package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/repository"
	"github.com/rahafha1/project-manager-api/internal/testutil"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestNewAIServiceWithoutKey(t *testing.T) {
	assert.Nil(t, NewAIService(""))
}

func TestParseSuggestions(t *testing.T) {
	content := "```json\n" + `[
		{"title": " Write docs ", "description": "d", "due_date": "2030-01-02"},
		{"title": "Deploy", "description": "", "due_date": "2030-01-03T18:00:00Z"},
		{"title": "Someday", "description": "", "due_date": "next week"},
		{"title": "No date", "description": "", "due_date": null}
	]` + "\n```"

	tasks, err := parseSuggestions(content)
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	assert.Equal(t, "Write docs", tasks[0].Title)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2030-01-02", tasks[0].DueDate.Format("2006-01-02"))

	require.NotNil(t, tasks[1].DueDate)
	assert.Equal(t, "2030-01-03", tasks[1].DueDate.Format("2006-01-02"))

	assert.Nil(t, tasks[2].DueDate)
	assert.Nil(t, tasks[3].DueDate)

	_, err = parseSuggestions("I found these tasks: ...")
	assert.ErrorIs(t, err, ErrAINoTasksGenerated)
}

func TestCircuitBreakerOpens(t *testing.T) {
	client := &fakeCompleter{err: errors.New("upstream timeout")}
	svc := NewAIServiceWithClient(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.SuggestTasks(ctx, "text")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrAIUnavailable)
	}

	_, err := svc.SuggestTasks(ctx, "text")
	assert.ErrorIs(t, err, ErrAIUnavailable)
	assert.Equal(t, 5, client.calls)
}

func TestSuggestTasksUsesCreationRights(t *testing.T) {
	db := testutil.NewDB(t)
	projectRepo := repository.NewProjectRepository(db)
	engine := access.NewEngine(access.DefaultPolicy(), access.NewResolver(projectRepo), nil)
	ctx := context.Background()

	m := testutil.CreateUser(t, db, "manager")
	x := testutil.CreateUser(t, db, "member")
	y := testutil.CreateUser(t, db, "outsider")
	p := testutil.CreateProject(t, db, "P", m)
	testutil.AddMember(t, db, p, x)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	client := &fakeCompleter{content: `[
		{"title": "Prepare slides", "description": "", "due_date": "` + tomorrow + `"},
		{"title": "", "description": "dropped", "due_date": null},
		{"title": "Book room", "description": "", "due_date": "2001-01-01"}
	]`}
	svc := NewTaskService(repository.NewTaskRepository(db), projectRepo, engine, NewAIServiceWithClient(client))

	_, err := svc.SuggestTasks(ctx, access.PrincipalFromUser(y), p.ID, "plan the offsite")
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.Equal(t, 0, client.calls)

	_, err = svc.SuggestTasks(ctx, access.PrincipalFromUser(x), p.ID, "  ")
	assert.ErrorIs(t, err, ErrAITextRequired)

	tasks, err := svc.SuggestTasks(ctx, access.PrincipalFromUser(x), p.ID, "plan the offsite")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Prepare slides", tasks[0].Title)
	assert.NotNil(t, tasks[0].DueDate)
	assert.Nil(t, tasks[1].DueDate)

	client.content = "Happy to help! The offsite needs slides and a room."
	_, err = svc.SuggestTasks(ctx, access.PrincipalFromUser(x), p.ID, "plan the offsite")
	assert.ErrorIs(t, err, ErrAINoTasksGenerated)

	unconfigured := NewTaskService(repository.NewTaskRepository(db), projectRepo, engine, nil)
	_, err = unconfigured.SuggestTasks(ctx, access.PrincipalFromUser(m), p.ID, "plan the offsite")
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)
}

func TestProseReplyIsUnusableNotFailure(t *testing.T) {
	client := &fakeCompleter{content: "Sure! Here are a few things you could do next."}
	svc := NewAIServiceWithClient(client)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.SuggestTasks(ctx, "text")
		require.ErrorIs(t, err, ErrAINoTasksGenerated)
	}
	assert.Equal(t, 7, client.calls)
}

func TestCanceledCallsKeepBreakerClosed(t *testing.T) {
	client := &fakeCompleter{err: context.Canceled}
	svc := NewAIServiceWithClient(client)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.SuggestTasks(ctx, "text")
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, 7, client.calls)
}
