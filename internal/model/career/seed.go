package career

// Seed provides the built-in career catalog the product ships with.
func Seed() []Career {
	return []Career{
		{
			ID:          "doctor",
			Title:       "Medical Doctor",
			Personality: "Professional, caring, analytical, detail-oriented",
			RequiredSkills: []string{
				"Biology", "Chemistry", "Anatomy", "Physiology", "Pharmacology",
				"Clinical Skills", "Patient Care", "Medical Ethics", "Research",
				"Critical Thinking", "Communication", "Empathy",
			},
			Salary:        SalaryRange{Entry: 60000, Mid: 180000, Senior: 350000},
			YearsTraining: 11,
			EducationPath: []string{
				"Pre-med undergraduate (4 years)",
				"Medical school (4 years)",
				"Residency (3-7 years)",
				"Optional: Fellowship (1-3 years)",
			},
			Certifications: []string{"MCAT", "USMLE Step 1-3", "Board Certification"},
			Progression: []Stage{
				{MinYears: 0, MaxYears: 2, Title: "Medical Student"},
				{MinYears: 3, MaxYears: 7, Title: "Resident Physician"},
				{MinYears: 8, MaxYears: 12, Title: "Attending Physician"},
				{MinYears: 13, MaxYears: 20, Title: "Senior Physician"},
				{MinYears: 20, Title: "Department Head"},
			},
			WorkLifeBalance: 3,
			JobSatisfaction: 8,
			GrowthPotential: 9,
		},
		{
			ID:          "software_engineer",
			Title:       "Software Engineer",
			Personality: "Logical, creative, problem-solver, continuous learner",
			RequiredSkills: []string{
				"Programming", "Data Structures", "Algorithms", "System Design",
				"Git", "Testing", "Debugging", "Agile", "Cloud Computing",
				"Problem Solving", "Continuous Learning",
			},
			Salary:        SalaryRange{Entry: 75000, Mid: 130000, Senior: 200000},
			YearsTraining: 1,
			EducationPath: []string{
				"Computer Science degree (4 years) or bootcamp (3-6 months)",
				"Internships during study",
				"Entry-level position",
				"Continuous learning and certifications",
			},
			Certifications: []string{"AWS Certified", "Google Cloud", "Azure", "Scrum Master"},
			Progression: []Stage{
				{MinYears: 0, MaxYears: 2, Title: "Junior Developer"},
				{MinYears: 3, MaxYears: 5, Title: "Mid-level Developer"},
				{MinYears: 6, MaxYears: 10, Title: "Senior Developer"},
				{MinYears: 10, MaxYears: 15, Title: "Staff Engineer"},
				{MinYears: 15, Title: "Engineering Manager"},
			},
			WorkLifeBalance: 7,
			JobSatisfaction: 8,
			GrowthPotential: 10,
		},
		{
			ID:          "data_scientist",
			Title:       "Data Scientist",
			Personality: "Analytical, curious, detail-oriented, communicative",
			RequiredSkills: []string{
				"Python", "R", "SQL", "Statistics", "Machine Learning",
				"Data Visualization", "Big Data", "Deep Learning",
				"Communication", "Problem Solving",
			},
			Salary:        SalaryRange{Entry: 85000, Mid: 130000, Senior: 180000},
			YearsTraining: 2,
			EducationPath: []string{
				"Mathematics, statistics or CS degree",
				"Master's in data science (optional)",
				"Online courses and projects",
				"Kaggle competitions",
			},
			Certifications: []string{"TensorFlow Certificate", "AWS ML", "Tableau"},
			Progression: []Stage{
				{MinYears: 0, MaxYears: 2, Title: "Junior Data Analyst"},
				{MinYears: 3, MaxYears: 5, Title: "Data Scientist"},
				{MinYears: 6, MaxYears: 10, Title: "Senior Data Scientist"},
				{MinYears: 10, MaxYears: 15, Title: "Lead Data Scientist"},
				{MinYears: 15, Title: "Chief Data Officer"},
			},
			WorkLifeBalance: 7,
			JobSatisfaction: 8,
			GrowthPotential: 9,
		},
		{
			ID:          "entrepreneur",
			Title:       "Entrepreneur",
			Personality: "Risk-taker, visionary, resilient, adaptable",
			RequiredSkills: []string{
				"Business Strategy", "Marketing", "Sales", "Finance", "Leadership",
				"Networking", "Product Development", "Risk Management",
				"Resilience", "Vision", "Adaptability",
			},
			Salary:        SalaryRange{Entry: -50000, Mid: 100000, Senior: 1000000},
			YearsTraining: 0,
			EducationPath: []string{
				"Any degree (business preferred)",
				"MBA (optional but helpful)",
				"Accelerator programs",
				"Mentorship and networking",
			},
			Certifications: []string{"Lean Startup", "Digital Marketing", "PMP"},
			Progression: []Stage{
				{MinYears: 0, MaxYears: 2, Title: "Startup Founder"},
				{MinYears: 3, MaxYears: 5, Title: "Growing Business Owner"},
				{MinYears: 6, MaxYears: 10, Title: "Established Entrepreneur"},
				{MinYears: 10, MaxYears: 15, Title: "Serial Entrepreneur"},
				{MinYears: 15, Title: "Investor"},
			},
			WorkLifeBalance: 3,
			JobSatisfaction: 9,
			GrowthPotential: 10,
		},
		{
			ID:          "teacher",
			Title:       "Teacher",
			Personality: "Patient, nurturing, communicative, organized",
			RequiredSkills: []string{
				"Subject Expertise", "Curriculum Development", "Classroom Management",
				"Communication", "Assessment", "Technology Integration",
				"Patience", "Creativity", "Empathy",
			},
			Salary:        SalaryRange{Entry: 40000, Mid: 55000, Senior: 75000},
			YearsTraining: 4,
			EducationPath: []string{
				"Bachelor's in education or subject",
				"Teaching credential program",
				"Student teaching",
				"Master's in education (for advancement)",
			},
			Certifications: []string{"Teaching License", "Subject Specialization", "ESL"},
			Progression: []Stage{
				{MinYears: 0, MaxYears: 2, Title: "New Teacher"},
				{MinYears: 3, MaxYears: 7, Title: "Experienced Teacher"},
				{MinYears: 8, MaxYears: 15, Title: "Department Head"},
				{MinYears: 15, MaxYears: 20, Title: "Assistant Principal"},
				{MinYears: 20, Title: "Principal"},
			},
			WorkLifeBalance: 8,
			JobSatisfaction: 8,
			GrowthPotential: 5,
		},
	}
}
