package seeder

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

func Defaults() []Seeder {
	return []Seeder{
		UsersSeeder{Password: DemoPassword},
		JobsSeeder{},
	}
}
