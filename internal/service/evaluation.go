package service

import (
	"regexp"
	"strings"

	"treasure_hunt_backend/internal/model"
)

const (
	// MinClueScore 答对一题的保底得分
	MinClueScore = 10
	// TimePenaltyWindow 每满 30 秒扣 1 分
	TimePenaltyWindow = 30
	// AttemptPenaltyStep 每次错误尝试扣 10 分
	AttemptPenaltyStep = 10
	// HintPenaltyStep 提示罚分步长，第 i 个提示扣 (i+1)*10
	HintPenaltyStep = 10
)

func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EvaluateAnswer 按线索的比对模式判定答案，纯函数
// regex 模式下非法表达式退化为精确匹配，不报错
func EvaluateAnswer(submitted, correct string, answerType model.AnswerType) bool {
	userAnswer := NormalizeAnswer(submitted)
	correctAnswer := NormalizeAnswer(correct)

	switch answerType {
	case model.AnswerContains:
		return strings.Contains(userAnswer, correctAnswer) ||
			strings.Contains(correctAnswer, userAnswer)
	case model.AnswerRegex:
		re, err := regexp.Compile("(?i)" + correctAnswer)
		if err != nil {
			return userAnswer == correctAnswer
		}
		return re.MatchString(userAnswer)
	default:
		return userAnswer == correctAnswer
	}
}

// ComputeClueScore 答对后的得分：基础分减时间罚分和重试罚分，每一步都不低于保底分
func ComputeClueScore(pointsValue, timeTaken, attemptNumber int) int {
	score := pointsValue

	score -= timeTaken / TimePenaltyWindow
	if score < MinClueScore {
		score = MinClueScore
	}

	score -= (attemptNumber - 1) * AttemptPenaltyStep
	if score < MinClueScore {
		score = MinClueScore
	}

	return score
}

// HintPenalty 第 hintIndex 个提示的罚分
func HintPenalty(hintIndex int) int {
	return (hintIndex + 1) * HintPenaltyStep
}

// ApplyHintPenalty 会话总分扣除提示罚分，下限为 0
func ApplyHintPenalty(totalScore, penalty int) int {
	totalScore -= penalty
	if totalScore < 0 {
		return 0
	}
	return totalScore
}
