// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the trusted caller binding produced by a verified token.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}
