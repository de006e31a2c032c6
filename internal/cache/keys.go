package cache

// Key builders shared by the command side (refresh/invalidate) and the
// query side (lookup), so both address the same entries.

func AccountKey(username string) string {
	return "account:" + username
}

func HistoryKey(accountID string) string {
	return "history:" + accountID
}
