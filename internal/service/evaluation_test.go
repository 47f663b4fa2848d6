package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treasure_hunt_backend/internal/model"
)

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "golden gate", NormalizeAnswer("  Golden Gate  "))
	assert.Equal(t, "x", NormalizeAnswer("X"))
	assert.Equal(t, "", NormalizeAnswer("   "))
}

func TestEvaluateAnswerExact(t *testing.T) {
	assert.True(t, EvaluateAnswer("  Lighthouse ", "lighthouse", model.AnswerExact))
	assert.True(t, EvaluateAnswer("LIGHTHOUSE", "Lighthouse", model.AnswerExact))
	assert.False(t, EvaluateAnswer("lighthouses", "lighthouse", model.AnswerExact))
	assert.False(t, EvaluateAnswer("", "lighthouse", model.AnswerExact))
}

func TestEvaluateAnswerContains(t *testing.T) {
	// 包含判断是双向的：答案包含正解或正解包含答案都算对
	assert.True(t, EvaluateAnswer("the old lighthouse on the hill", "lighthouse", model.AnswerContains))
	assert.True(t, EvaluateAnswer("light", "lighthouse", model.AnswerContains))
	assert.True(t, EvaluateAnswer("Lighthouse", "lighthouse", model.AnswerContains))
	assert.False(t, EvaluateAnswer("windmill", "lighthouse", model.AnswerContains))
}

func TestEvaluateAnswerRegex(t *testing.T) {
	assert.True(t, EvaluateAnswer("route 66", `route \d+`, model.AnswerRegex))
	assert.True(t, EvaluateAnswer("ROUTE 66", `route \d+`, model.AnswerRegex))
	assert.False(t, EvaluateAnswer("route sixty-six", `route \d+`, model.AnswerRegex))
}

func TestEvaluateAnswerRegexMalformedFallsBackToExact(t *testing.T) {
	// 非法正则退化为精确匹配而不是报错
	assert.True(t, EvaluateAnswer("[unclosed", "[unclosed", model.AnswerRegex))
	assert.False(t, EvaluateAnswer("anything", "[unclosed", model.AnswerRegex))
}

func TestComputeClueScore(t *testing.T) {
	// 100 分的线索，65 秒答出，首次尝试：100 - 2 = 98
	assert.Equal(t, 98, ComputeClueScore(100, 65, 1))

	// 同上但第 3 次尝试才答对：98 - 20 = 78
	assert.Equal(t, 78, ComputeClueScore(100, 65, 3))

	// 29 秒内首次答对不扣时间分
	assert.Equal(t, 100, ComputeClueScore(100, 29, 1))
	assert.Equal(t, 99, ComputeClueScore(100, 30, 1))
}

func TestComputeClueScoreFloors(t *testing.T) {
	// 时间罚分阶段的保底
	assert.Equal(t, MinClueScore, ComputeClueScore(15, 300, 1))

	// 重试罚分阶段的保底
	assert.Equal(t, MinClueScore, ComputeClueScore(100, 0, 15))

	// 两阶段依次触底
	assert.Equal(t, MinClueScore, ComputeClueScore(20, 600, 8))
}

func TestComputeClueScoreFloorsAreSequential(t *testing.T) {
	// 先按时间触底到 10，再扣重试罚分仍保底 10，而不是从原始分连续扣
	assert.Equal(t, MinClueScore, ComputeClueScore(15, 300, 2))
}

func TestHintPenalty(t *testing.T) {
	assert.Equal(t, 10, HintPenalty(0))
	assert.Equal(t, 20, HintPenalty(1))
	assert.Equal(t, 30, HintPenalty(2))
}

func TestApplyHintPenalty(t *testing.T) {
	assert.Equal(t, 90, ApplyHintPenalty(100, 10))
	assert.Equal(t, 0, ApplyHintPenalty(5, 10))
	assert.Equal(t, 0, ApplyHintPenalty(0, 30))
}
