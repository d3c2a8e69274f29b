package store

import "roadmap/internal/domain"

// SeedProjects returns the canonical example collection used on first run.
// Two fully populated projects so every dashboard panel has data to show.
func SeedProjects() []domain.Project {
	return []domain.Project{
		{
			ID:           "1",
			Name:         "E-commerce Platform",
			Description:  "Modern e-commerce platform built with React and Node.js",
			SoftwareType: "web",
			Status:       "in-progress",
			Priority:     "high",
			StartDate:    "2024-01-15",
			EndDate:      "2024-06-30",
			Team:         []string{"João Silva", "Maria Santos", "Pedro Costa"},
			Technologies: []string{"React", "Node.js", "PostgreSQL", "Redis"},
			Progress:     65,
			Milestones: []domain.Milestone{
				{
					ID:          "1",
					Title:       "Project Planning",
					Description: "Initial planning and requirements gathering",
					Date:        "2024-01-15",
					Completed:   true,
					Type:        "planning",
				},
				{
					ID:          "2",
					Title:       "Frontend Development",
					Description: "React interface implementation",
					Date:        "2024-03-15",
					Completed:   true,
					Type:        "development",
				},
				{
					ID:          "3",
					Title:       "Backend API",
					Description: "RESTful API implementation",
					Date:        "2024-05-01",
					Completed:   false,
					Type:        "development",
				},
			},
			Epics: []domain.Epic{
				{
					ID:          "1",
					Title:       "Authentication System",
					Description: "Full login and registration flow",
					StartDate:   "2024-01-20",
					EndDate:     "2024-02-15",
					Status:      "completed",
					Progress:    100,
					Features: []domain.Feature{
						{
							ID:          "1",
							Title:       "User Login",
							Description: "Login screen with validation",
							StartDate:   "2024-01-20",
							EndDate:     "2024-01-25",
							Status:      "completed",
							Progress:    100,
							AssignedTo:  "João Silva",
						},
						{
							ID:          "2",
							Title:       "User Registration",
							Description: "Sign-up form",
							StartDate:   "2024-01-26",
							EndDate:     "2024-02-05",
							Status:      "completed",
							Progress:    100,
							AssignedTo:  "Maria Santos",
						},
					},
				},
				{
					ID:          "2",
					Title:       "Product Catalog",
					Description: "Product browsing and search",
					StartDate:   "2024-02-16",
					EndDate:     "2024-04-30",
					Status:      "in-progress",
					Progress:    70,
					Features: []domain.Feature{
						{
							ID:          "3",
							Title:       "Product Listing",
							Description: "Responsive product grid",
							StartDate:   "2024-02-16",
							EndDate:     "2024-03-15",
							Status:      "completed",
							Progress:    100,
							AssignedTo:  "Pedro Costa",
						},
						{
							ID:          "4",
							Title:       "Filters and Search",
							Description: "Advanced filter system",
							StartDate:   "2024-03-16",
							EndDate:     "2024-04-30",
							Status:      "in-progress",
							Progress:    40,
							AssignedTo:  "João Silva",
						},
					},
				},
			},
			HasCostBenefit: true,
			CostBenefit: &domain.CostBenefit{
				EstimatedCost:   150000,
				EstimatedReturn: 500000,
				Currency:        "BRL",
				CostType:        "investment",
				Description:     "Platform investment expected to triple online sales",
			},
			CreatedAt: "2024-01-01T00:00:00Z",
			UpdatedAt: "2024-01-20T00:00:00Z",
		},
		{
			ID:           "2",
			Name:         "Mobile Banking App",
			Description:  "Secure banking application for iOS and Android",
			SoftwareType: "mobile",
			Status:       "planning",
			Priority:     "critical",
			StartDate:    "2024-02-01",
			EndDate:      "2024-09-30",
			Team:         []string{"Ana Oliveira", "Carlos Ferreira"},
			Technologies: []string{"React Native", "Firebase", "Stripe"},
			Progress:     15,
			Milestones: []domain.Milestone{
				{
					ID:          "4",
					Title:       "Security Requirements",
					Description: "Define security and compliance protocols",
					Date:        "2024-02-15",
					Completed:   true,
					Type:        "planning",
				},
				{
					ID:          "5",
					Title:       "UI/UX Design",
					Description: "Interface and experience design",
					Date:        "2024-03-01",
					Completed:   false,
					Type:        "planning",
				},
			},
			Epics: []domain.Epic{
				{
					ID:          "3",
					Title:       "User Onboarding",
					Description: "Registration and verification flow",
					StartDate:   "2024-02-01",
					EndDate:     "2024-03-15",
					Status:      "planning",
					Progress:    0,
					Features: []domain.Feature{
						{
							ID:          "5",
							Title:       "Identity Verification",
							Description: "Document-based verification",
							StartDate:   "2024-02-01",
							EndDate:     "2024-02-20",
							Status:      "planning",
							Progress:    0,
							AssignedTo:  "Ana Oliveira",
						},
					},
				},
			},
			HasCostBenefit: true,
			CostBenefit: &domain.CostBenefit{
				EstimatedCost:   800000,
				EstimatedReturn: 2000000,
				Currency:        "BRL",
				CostType:        "avoided",
				Description:     "Operational cost reduction through digital self-service",
			},
			CreatedAt: "2024-01-15T00:00:00Z",
			UpdatedAt: "2024-01-25T00:00:00Z",
		},
	}
}
