// Package definitions reads bean definitions from files.
//
// Three formats are understood, picked by file extension:
//
// YAML (.yaml, .yml):
//
//	post_processors:
//	  - id: passwordProcessor
//	    type: services.PasswordPostProcessor
//	beans:
//	  - id: mailService
//	    type: services.MailService
//	  - id: paymentService
//	    type: services.PaymentService
//	    properties:
//	      maxAmount: 100
//	    refs:
//	      mailService: mailService
//
// TOML (.toml):
//
//	[[beans]]
//	id = "paymentService"
//	type = "services.PaymentService"
//	properties = { maxAmount = "100" }
//	refs = { mailService = "mailService" }
//
// XML (.xml):
//
//	<beans>
//	  <post-processor id="passwordProcessor" class="services.PasswordPostProcessor"/>
//	  <bean id="paymentService" class="services.PaymentService">
//	    <property name="maxAmount" value="100"/>
//	    <property name="mailService" ref="mailService"/>
//	  </bean>
//	</beans>
//
// YAML and TOML list post-processors first, then beans. XML keeps document
// order. Every entry is validated before it is returned.
package definitions
