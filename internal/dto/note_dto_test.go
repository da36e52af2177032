package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateNormalizeAliases(t *testing.T) {
	req := CreateNoteRequest{Titulo: "t", Conteudo: "c", TarefaId: "id"}
	req.Normalize()

	assert.Equal(t, "t", req.Title)
	assert.Equal(t, "c", req.Content)
	assert.Equal(t, "id", req.TaskId)
}

func TestCreateNormalizeCanonicalWins(t *testing.T) {
	req := CreateNoteRequest{Title: "keep", Titulo: "drop", Content: "keep", Conteudo: "drop"}
	req.Normalize()

	assert.Equal(t, "keep", req.Title)
	assert.Equal(t, "keep", req.Content)
}

func TestUpdateNormalize(t *testing.T) {
	alias := "novo"
	req := UpdateNoteRequest{Titulo: &alias}
	req.Normalize()

	assert.Equal(t, &alias, req.Title)
	assert.Nil(t, req.Content)
}
