package components

import (
	"strconv"

	"doubtsolver/models"
)

func doubtID(doubt models.Doubt) string {
	return strconv.FormatInt(doubt.ID, 10)
}

func doubtAnchor(doubt models.Doubt) string {
	return "doubt-" + doubtID(doubt)
}

func answerInputID(doubt models.Doubt) string {
	return "answer-" + doubtID(doubt)
}

func listLabel(resolved bool) string {
	if resolved {
		return "resolved"
	}
	return "unresolved"
}
