// @title           cepapp API
// @version         1.0
// @description     User and address records with ViaCEP zip code enrichment.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the JWT.
package main

import "github.com/muller/cepapp/cmd/cepapp/cmd"

func main() {
	cmd.Execute()
}
