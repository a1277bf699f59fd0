package dto

// QuestionResponseItem is one entry of a submission: the question and the answer ("reponse") chosen for it.
type QuestionResponseItem struct {
	QuestionID uint `json:"questionId"`
	ResponseID uint `json:"responseId"`
}

// SubmitQuizRequest is the body of a quiz submission. The entry count is checked by the service
// so that the ordered precondition errors are reported consistently.
type SubmitQuizRequest struct {
	Responses []QuestionResponseItem `json:"responses"`
}
