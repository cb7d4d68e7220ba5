package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/handler"
)

func (s *testServer) createComment(token string, userID, projectID uint, content string) handler.CommentResponse {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/comments", map[string]interface{}{
		"content": content, "user_id": userID, "project_id": projectID,
	}, token)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var comment handler.CommentResponse
	decode(s.t, rec, &comment)
	return comment
}

func TestCommentLifecycle(t *testing.T) {
	s := newSQLiteServer(t)
	id, token := s.signupAndSignin("alice", "a@x.com", "pw1")
	project := s.createProject(token, id, "Portfolio")
	comment := s.createComment(token, id, project.ID, "nice!")
	path := fmt.Sprintf("/comments/%d", comment.ID)

	var got handler.CommentResponse
	decode(t, s.do(http.MethodGet, path, nil, ""), &got)
	assert.Equal(t, "nice!", got.Content)
	assert.Equal(t, project.ID, got.ProjectID)

	require.Equal(t, http.StatusOK, s.do(http.MethodPut, path, map[string]string{"content": "very nice!"}, token).Code)
	decode(t, s.do(http.MethodGet, path, nil, ""), &got)
	assert.Equal(t, "very nice!", got.Content)

	var list []handler.CommentResponse
	decode(t, s.do(http.MethodGet, "/comments", nil, ""), &list)
	assert.Len(t, list, 1)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, path, nil, token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, nil, "").Code)
}

func TestCreateComment_Rejections(t *testing.T) {
	s := newSQLiteServer(t)
	id, token := s.signupAndSignin("alice", "a@x.com", "pw1")
	project := s.createProject(token, id, "Portfolio")

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode string
	}{
		{"missing content", map[string]interface{}{"user_id": id, "project_id": project.ID}, "VALIDATION_ERROR"},
		{"missing project", map[string]interface{}{"content": "x", "user_id": id}, "VALIDATION_ERROR"},
		{"unknown user", map[string]interface{}{"content": "x", "user_id": 999, "project_id": project.ID}, "INVALID_REFERENCE"},
		{"unknown project", map[string]interface{}{"content": "x", "user_id": id, "project_id": 999}, "INVALID_REFERENCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/comments", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, errorOf(t, rec).Code)
		})
	}
}

func TestListProjectComments(t *testing.T) {
	s := newSQLiteServer(t)
	id, token := s.signupAndSignin("alice", "a@x.com", "pw1")
	one := s.createProject(token, id, "One")
	two := s.createProject(token, id, "Two")
	s.createComment(token, id, one.ID, "first")
	s.createComment(token, id, one.ID, "second")
	s.createComment(token, id, two.ID, "elsewhere")

	rec := s.do(http.MethodGet, fmt.Sprintf("/projects/%d/comments", one.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []handler.CommentResponse
	decode(t, rec, &comments)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)

	rec = s.do(http.MethodGet, "/projects/999/comments", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROJECT_NOT_FOUND", errorOf(t, rec).Code)
}

func TestScenario_DeletingUserRemovesTheirContent(t *testing.T) {
	s := newSQLiteServer(t)

	rec := s.do(http.MethodPost, "/signup", map[string]string{"username": "alice", "email": "a@x.com", "password": "pw1"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var alice handler.UserResponse
	decode(t, rec, &alice)

	_, token := s.signupAndSignin("bob", "b@x.com", "pw2")
	project := s.createProject(token, alice.ID, "Portfolio")
	comment := s.createComment(token, alice.ID, project.ID, "nice!")

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, fmt.Sprintf("/users/%d", alice.ID), nil, token).Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/projects/%d", project.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROJECT_NOT_FOUND", errorOf(t, rec).Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/comments/%d", comment.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "COMMENT_NOT_FOUND", errorOf(t, rec).Code)
}
