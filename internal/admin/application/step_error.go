package application

import "fmt"

// StepError は複数ステップからなる書き込み処理のうち、どのテーブル・操作で
// 失敗したかを呼び出し元(管理ツール)へ伝えるためのエラー。
// 先行して成功したステップのロールバックは行わない方針のため、呼び出し元は
// この step を手掛かりに再試行・突き合わせを行う。
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step=%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError は step タグ付きのエラーを生成する。
func NewStepError(step string, err error) *StepError {
	return &StepError{Step: step, Err: err}
}
