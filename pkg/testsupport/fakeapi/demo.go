package fakeapi

// SeedDemo fills the server with a small linked data set: two users with
// accounts, category types, categories, transactions and a goal.
func (s *Server) SeedDemo() {
	alice := s.Seed("users", map[string]any{
		"first_name": "Alice", "last_name": "Silva", "cpf": "12345678901",
		"email": "alice@example.com", "manual_balance": 1500.5,
	})
	bruno := s.Seed("users", map[string]any{
		"first_name": "Bruno", "last_name": "Costa", "cpf": "10987654321",
		"email": "bruno@example.com", "manual_balance": 0,
	})

	savings := s.Seed("accounts", map[string]any{
		"name": "Savings", "type": "savings", "account_number": "0001-1", "balance": 1200,
	})
	checking := s.Seed("accounts", map[string]any{
		"name": "Checking", "type": "checking", "account_number": "0002-9", "balance": 300.5,
	})
	s.Seed("users_accounts", map[string]any{"user_id": alice, "account_id": savings})
	s.Seed("users_accounts", map[string]any{"user_id": bruno, "account_id": checking})

	income := s.Seed("category_types", map[string]any{"name": "Income", "is_positive": true})
	expense := s.Seed("category_types", map[string]any{"name": "Expense", "is_positive": false})

	salary := s.Seed("categories", map[string]any{
		"user_id": alice, "category_type_id": income, "name": "Salary", "description": "Monthly pay",
	})
	rent := s.Seed("categories", map[string]any{
		"user_id": alice, "category_type_id": expense, "name": "Rent", "description": "Apartment",
	})

	s.Seed("transactions", map[string]any{
		"user_id": alice, "category_id": salary, "name": "October salary", "description": "",
		"amount": 5000, "date": "2026-10-01", "is_recurring": true,
		"recurrence_interval": "Monthly", "next_due_date": "2026-11-01",
	})
	s.Seed("transactions", map[string]any{
		"user_id": alice, "category_id": rent, "name": "October rent", "description": "",
		"amount": 1800, "date": "2026-10-05", "is_recurring": true,
		"recurrence_interval": "Monthly", "next_due_date": "2026-11-05",
	})

	s.Seed("financial_goals", map[string]any{
		"user_id": bruno, "name": "Emergency fund", "description": "Six months of expenses",
		"target_amount": 10000, "deadline": "2027-06-30",
	})
}
