package finance

// BankType represents the channel money moved through.
// The shop keeps two real bank accounts (工行 and 农行) plus a WeChat
// wallet that only appears on income/expense records, never as a
// reconcilable bank account.
type BankType string

const (
	BankTypeGBank  BankType = "GBANK"  // 工行
	BankTypeNBank  BankType = "NBANK"  // 农行
	BankTypeWeChat BankType = "WECHAT" // 微信
)

// IsValid checks if the bank type is valid for income/expense records
func (b BankType) IsValid() bool {
	switch b {
	case BankTypeGBank, BankTypeNBank, BankTypeWeChat:
		return true
	}
	return false
}

// IsAccountType returns true for bank types that back a real BankAccount
func (b BankType) IsAccountType() bool {
	return b == BankTypeGBank || b == BankTypeNBank
}

// Label returns the Chinese display label
func (b BankType) Label() string {
	switch b {
	case BankTypeGBank:
		return "工行"
	case BankTypeNBank:
		return "农行"
	case BankTypeWeChat:
		return "微信"
	}
	return string(b)
}

// AccountBankTypes lists the bank types that back reconcilable accounts
func AccountBankTypes() []BankType {
	return []BankType{BankTypeGBank, BankTypeNBank}
}
