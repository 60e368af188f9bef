package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/championship --output domain/championship --outpkg championshipmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/scoring --output domain/scoring --outpkg scoringmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/prediction --output domain/prediction --outpkg predictionmock --filename repository_mock.go
