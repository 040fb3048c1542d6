package store

import "fmt"

const (
	keyAccount      = "account:%s"
	keyTransactions = "account:%s:transactions"
	keyBets         = "account:%s:bets"
)

func AccountKey(username string) string {
	return fmt.Sprintf(keyAccount, username)
}

func TransactionsKey(username string) string {
	return fmt.Sprintf(keyTransactions, username)
}

func BetsKey(username string) string {
	return fmt.Sprintf(keyBets, username)
}
