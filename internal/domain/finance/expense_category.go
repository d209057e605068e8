package finance

// ExpenseCategory represents the closed set of expense categories the shop
// books against. Report aggregation switches over these exhaustively, so a
// new category is a compile-visible addition rather than a free-string typo.
type ExpenseCategory string

const (
	ExpenseCategoryRent          ExpenseCategory = "RENT"           // 房租
	ExpenseCategoryUtilities     ExpenseCategory = "UTILITIES"      // 水电费
	ExpenseCategoryThreeAcids    ExpenseCategory = "THREE_ACIDS"    // 三酸
	ExpenseCategoryCausticSoda   ExpenseCategory = "CAUSTIC_SODA"   // 片碱
	ExpenseCategorySodiumSulfite ExpenseCategory = "SODIUM_SULFITE" // 亚硫酸钠
	ExpenseCategoryColorPowder   ExpenseCategory = "COLOR_POWDER"   // 色粉
	ExpenseCategoryDegreaser     ExpenseCategory = "DEGREASER"      // 除油剂
	ExpenseCategoryFixtures      ExpenseCategory = "FIXTURES"       // 挂具
	ExpenseCategoryOutsourcing   ExpenseCategory = "OUTSOURCING"    // 外协加工
	ExpenseCategoryDaily         ExpenseCategory = "DAILY"          // 日常开支
	ExpenseCategorySalary        ExpenseCategory = "SALARY"         // 工资
	ExpenseCategoryOther         ExpenseCategory = "OTHER"          // 其他
)

// AllExpenseCategories returns every valid category
func AllExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategoryThreeAcids,
		ExpenseCategoryCausticSoda, ExpenseCategorySodiumSulfite, ExpenseCategoryColorPowder,
		ExpenseCategoryDegreaser, ExpenseCategoryFixtures, ExpenseCategoryOutsourcing,
		ExpenseCategoryDaily, ExpenseCategorySalary, ExpenseCategoryOther,
	}
}

// IsValid checks if the category is valid
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategoryThreeAcids,
		ExpenseCategoryCausticSoda, ExpenseCategorySodiumSulfite, ExpenseCategoryColorPowder,
		ExpenseCategoryDegreaser, ExpenseCategoryFixtures, ExpenseCategoryOutsourcing,
		ExpenseCategoryDaily, ExpenseCategorySalary, ExpenseCategoryOther:
		return true
	}
	return false
}

// IsCOGS returns true for the direct cost categories (materials and
// outsourcing) that belong in cost of goods sold on the income statement.
func (c ExpenseCategory) IsCOGS() bool {
	switch c {
	case ExpenseCategoryThreeAcids, ExpenseCategoryCausticSoda, ExpenseCategorySodiumSulfite,
		ExpenseCategoryColorPowder, ExpenseCategoryDegreaser, ExpenseCategoryFixtures,
		ExpenseCategoryOutsourcing:
		return true
	}
	return false
}

// IsOverhead returns true for the operating expense categories
func (c ExpenseCategory) IsOverhead() bool {
	switch c {
	case ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategoryDaily,
		ExpenseCategorySalary, ExpenseCategoryOther:
		return true
	}
	return false
}

// Label returns the Chinese display label
func (c ExpenseCategory) Label() string {
	switch c {
	case ExpenseCategoryRent:
		return "房租"
	case ExpenseCategoryUtilities:
		return "水电费"
	case ExpenseCategoryThreeAcids:
		return "三酸"
	case ExpenseCategoryCausticSoda:
		return "片碱"
	case ExpenseCategorySodiumSulfite:
		return "亚硫酸钠"
	case ExpenseCategoryColorPowder:
		return "色粉"
	case ExpenseCategoryDegreaser:
		return "除油剂"
	case ExpenseCategoryFixtures:
		return "挂具"
	case ExpenseCategoryOutsourcing:
		return "外协加工"
	case ExpenseCategoryDaily:
		return "日常开支"
	case ExpenseCategorySalary:
		return "工资"
	case ExpenseCategoryOther:
		return "其他"
	}
	return string(c)
}
