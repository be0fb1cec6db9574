package controllers

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestNextStatusOnReply(t *testing.T) {
    // user replies
    assert.Equal(t, "new", nextStatusOnReply("new", false))
    assert.Equal(t, "in_progress", nextStatusOnReply("in_progress", false))
    assert.Equal(t, "in_progress", nextStatusOnReply("resolved", false))

    // admin replies
    assert.Equal(t, "in_progress", nextStatusOnReply("new", true))
    assert.Equal(t, "in_progress", nextStatusOnReply("in_progress", true))
    assert.Equal(t, "in_progress", nextStatusOnReply("resolved", true))
}
